package quiz

import "errors"

var (
	// ErrEmptyQuiz is returned by Start for a definition with no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")

	// ErrBadDefinition is returned by Definition.Validate for structurally
	// broken questions.
	ErrBadDefinition = errors.New("invalid quiz definition")

	// ErrInvalidAnswer is returned by Submit when the answer value fails
	// validation. The attempt state does not advance.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrInvalidTransition is returned when an operation is called in a
	// phase that does not allow it. Answers are write-once per attempt.
	ErrInvalidTransition = errors.New("invalid quiz transition")

	// ErrNoActiveQuestion is returned by CurrentQuestion before the attempt
	// starts or after it completes.
	ErrNoActiveQuestion = errors.New("no active question")
)
