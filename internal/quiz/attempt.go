package quiz

import (
	"fmt"
	"strings"
)

// Phase is the attempt state machine phase.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress       // current question shown, no answer yet
	PhaseAnswered         // current question answered, waiting for Advance
	PhaseCompleted
)

// Answer is a submitted answer value. OptionIndex is read for choice
// questions, Text for essay questions.
type Answer struct {
	OptionIndex int
	Text        string
}

type recordedAnswer struct {
	answer  Answer
	correct bool
}

// Attempt is one run through a Definition. It is owned by a single
// session and is not safe for concurrent use.
//
// Forward-only: once a question is answered the answer is immutable and
// the index never moves backward.
type Attempt struct {
	def      Definition
	phase    Phase
	index    int
	recorded []recordedAnswer
	correct  int
}

// Start begins an attempt over def. Fails with ErrEmptyQuiz for an empty
// definition and with ErrBadDefinition for a structurally invalid one.
func Start(def Definition) (*Attempt, error) {
	if len(def.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Attempt{
		def:      def,
		phase:    PhaseInProgress,
		recorded: make([]recordedAnswer, len(def.Questions)),
	}, nil
}

// Phase returns the current phase.
func (a *Attempt) Phase() Phase { return a.phase }

// Index returns the 0-based current question index.
func (a *Attempt) Index() int { return a.index }

// Len returns the total question count.
func (a *Attempt) Len() int { return len(a.def.Questions) }

// Score returns the running correct count. Only meaningful as a final
// score once the attempt is completed.
func (a *Attempt) Score() int { return a.correct }

// Completed reports whether the attempt reached the terminal phase.
func (a *Attempt) Completed() bool { return a.phase == PhaseCompleted }

// CurrentQuestion returns the question at the current index. Fails with
// ErrNoActiveQuestion outside InProgress/Answered.
func (a *Attempt) CurrentQuestion() (Question, error) {
	if a.phase != PhaseInProgress && a.phase != PhaseAnswered {
		return Question{}, ErrNoActiveQuestion
	}
	return a.def.Questions[a.index], nil
}

// Submit records the answer for the current question and evaluates it.
// Choice answers must be an in-range option index; essay answers must be
// non-empty after trimming. Essay answers always count as correct here;
// the local score is a completion proxy, grading quality is the premium
// gateway's job.
//
// Valid only in InProgress; resubmitting an answered question fails with
// ErrInvalidTransition and changes nothing.
func (a *Attempt) Submit(ans Answer) error {
	if a.phase != PhaseInProgress {
		return fmt.Errorf("%w: submit in phase %d", ErrInvalidTransition, a.phase)
	}

	q := a.def.Questions[a.index]
	correct := false
	switch q.Kind {
	case KindChoice:
		if ans.OptionIndex < 0 || ans.OptionIndex >= len(q.Options) {
			return fmt.Errorf("%w: option %d out of range for question %s", ErrInvalidAnswer, ans.OptionIndex, q.ID)
		}
		correct = ans.OptionIndex == q.CorrectIndex
	case KindEssay:
		if strings.TrimSpace(ans.Text) == "" {
			return fmt.Errorf("%w: empty essay answer for question %s", ErrInvalidAnswer, q.ID)
		}
		correct = true
	}

	a.recorded[a.index] = recordedAnswer{answer: ans, correct: correct}
	if correct {
		a.correct++
	}
	a.phase = PhaseAnswered
	return nil
}

// Advance moves past the answered question: to the next question, or to
// Completed when the current question was the last. Valid only in
// Answered.
func (a *Attempt) Advance() error {
	if a.phase != PhaseAnswered {
		return fmt.Errorf("%w: advance in phase %d", ErrInvalidTransition, a.phase)
	}
	if a.index == len(a.def.Questions)-1 {
		a.phase = PhaseCompleted
		return nil
	}
	a.index++
	a.phase = PhaseInProgress
	return nil
}

// Recorded returns the answer submitted for question i and whether it
// scored correct. ok is false if the question has not been answered.
func (a *Attempt) Recorded(i int) (ans Answer, correct bool, ok bool) {
	if i < 0 || i >= len(a.recorded) {
		return Answer{}, false, false
	}
	if i > a.index || (i == a.index && a.phase == PhaseInProgress) {
		return Answer{}, false, false
	}
	r := a.recorded[i]
	return r.answer, r.correct, true
}

// LastCorrect reports whether the most recently submitted answer scored
// correct. Only meaningful in Answered.
func (a *Attempt) LastCorrect() bool {
	if a.phase != PhaseAnswered {
		return false
	}
	return a.recorded[a.index].correct
}
