package quiz

import "fmt"

// Kind distinguishes the two question styles the service ships.
type Kind string

const (
	// KindChoice is a multiple-choice question with exactly one correct option.
	KindChoice Kind = "choice"
	// KindEssay is a free-text question; local scoring treats it as a
	// completion checkbox, real grading happens through the premium gateway.
	KindEssay Kind = "essay"
)

// Question is a single quiz item. Immutable once fetched.
type Question struct {
	ID           string
	Prompt       string
	Kind         Kind
	Options      []string // choice only
	CorrectIndex int      // choice only, index into Options
}

// Definition is the ordered question list attached to a lesson.
type Definition struct {
	Questions []Question
}

// Len returns the number of questions.
func (d Definition) Len() int { return len(d.Questions) }

// Validate checks the structural invariants of every question:
// a choice question needs at least two options and an in-range correct
// index, an essay question must not carry options.
func (d Definition) Validate() error {
	for i, q := range d.Questions {
		switch q.Kind {
		case KindChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: question %d (%s) has %d options, need at least 2", ErrBadDefinition, i, q.ID, len(q.Options))
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("%w: question %d (%s) correct index %d out of range", ErrBadDefinition, i, q.ID, q.CorrectIndex)
			}
		case KindEssay:
			if len(q.Options) > 0 {
				return fmt.Errorf("%w: essay question %d (%s) must not have options", ErrBadDefinition, i, q.ID)
			}
		default:
			return fmt.Errorf("%w: question %d (%s) has unknown kind %q", ErrBadDefinition, i, q.ID, q.Kind)
		}
	}
	return nil
}
