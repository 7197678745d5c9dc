package session

import (
	"errors"
	"fmt"
)

// ErrEmptyNote rejects a whitespace-only note when none exists yet.
// There is nothing meaningful to create, so no network call is made.
var ErrEmptyNote = errors.New("note is empty")

// ErrNoQuiz is returned by StartQuiz for lessons without a quiz.
var ErrNoQuiz = errors.New("lesson has no quiz")

// ErrLessonNotFound indicates the content service has no lesson for the
// slug. Missing progress or notes never produce this; only absent
// content does.
type ErrLessonNotFound struct {
	Slug string
	Err  error
}

func (e *ErrLessonNotFound) Error() string {
	return fmt.Sprintf("lesson %q not found: %v", e.Slug, e.Err)
}

func (e *ErrLessonNotFound) Unwrap() error { return e.Err }

// ErrProgressSaveFailed surfaces a failed completion write. The local
// completed flag stays set; progress is soft state the user can re-mark.
type ErrProgressSaveFailed struct {
	Slug string
	Err  error
}

func (e *ErrProgressSaveFailed) Error() string {
	return fmt.Sprintf("save progress for %q: %v", e.Slug, e.Err)
}

func (e *ErrProgressSaveFailed) Unwrap() error { return e.Err }

// ErrNoteSaveFailed surfaces a note save that exhausted its retries.
// Attempts counts every call made, including the first.
type ErrNoteSaveFailed struct {
	Slug     string
	Attempts int
	Err      error
}

func (e *ErrNoteSaveFailed) Error() string {
	return fmt.Sprintf("save note for %q failed after %d attempts: %v", e.Slug, e.Attempts, e.Err)
}

func (e *ErrNoteSaveFailed) Unwrap() error { return e.Err }

// ErrBookmarkSyncFailed surfaces a failed bookmark toggle. The local
// flag is rolled back; the operation is cheap to re-trigger manually.
type ErrBookmarkSyncFailed struct {
	Slug string
	Err  error
}

func (e *ErrBookmarkSyncFailed) Error() string {
	return fmt.Sprintf("sync bookmark for %q: %v", e.Slug, e.Err)
}

func (e *ErrBookmarkSyncFailed) Unwrap() error { return e.Err }
