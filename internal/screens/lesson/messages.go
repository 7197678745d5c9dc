package lesson

import (
	"time"

	"github.com/dmehra/learnly/internal/premium"
)

// lessonLoadedMsg is sent when the lesson fetch finishes.
type lessonLoadedMsg struct {
	Err error
}

// progressSavedMsg is sent when the completion write finishes.
type progressSavedMsg struct {
	Err error
}

// noteSaveDoneMsg is sent when a note save cycle terminates.
type noteSaveDoneMsg struct {
	Attempts int
	Aborted  bool
	Err      error
}

// bookmarkSyncedMsg is sent when a bookmark toggle finishes.
type bookmarkSyncedMsg struct {
	Err error
}

// chatReplyMsg carries the tutor's answer or its denial outcome.
type chatReplyMsg struct {
	Reply   *premium.ChatReply
	Outcome premium.Outcome
	Err     error
}

// gradeResultMsg carries AI grading feedback for an essay answer.
type gradeResultMsg struct {
	QuestionID string
	Result     *premium.GradeResult
	Outcome    premium.Outcome
	Err        error
}

// refreshTickMsg redraws the reading clock once per second.
type refreshTickMsg time.Time
