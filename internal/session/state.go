package session

// Phase is the lesson view state machine phase.
type Phase int

const (
	PhaseLoading Phase = iota // fetching lesson content
	PhaseReady                // reading the lesson body
	PhaseQuizActive
	PhaseQuizComplete
	PhaseDone // lesson closed or navigated away
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseQuizActive:
		return "quiz-active"
	case PhaseQuizComplete:
		return "quiz-complete"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}
