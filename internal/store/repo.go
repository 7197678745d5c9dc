package store

import (
	"context"
	"time"
)

// LessonEventData captures the data for a completed lesson session.
type LessonEventData struct {
	SessionID   string
	LessonSlug  string
	LessonTitle string
	QuizTotal   int
	QuizCorrect int
	TimeSpentS  int
	Completed   bool
}

// NoteSaveEventData captures the outcome of a note save cycle.
type NoteSaveEventData struct {
	SessionID  string
	LessonSlug string
	Attempts   int
	Success    bool
	Aborted    bool
	ErrorMsg   string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// PremiumRequestEventData captures a premium feature attempt and its
// gateway classification.
type PremiumRequestEventData struct {
	SessionID string
	Feature   string
	Outcome   string
}

// EventRecorder provides append access to domain events.
type EventRecorder interface {
	// AppendLessonEvent records a finished lesson session.
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	// AppendNoteSave records a finished note save cycle.
	AppendNoteSave(ctx context.Context, data NoteSaveEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendPremiumRequest records a premium feature attempt.
	AppendPremiumRequest(ctx context.Context, data PremiumRequestEventData) error
}

// LessonStats aggregates lesson history for the stats command.
type LessonStats struct {
	Sessions     int
	Completed    int
	QuizTotal    int
	QuizCorrect  int
	TimeSpentS   int
	LastActivity time.Time
}

// NoteStats aggregates note save history.
type NoteStats struct {
	Saves    int
	Failures int
	Retries  int
}

// LLMStats aggregates LLM usage for the stats command.
type LLMStats struct {
	Requests     int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// StatsRepo provides read access to aggregated event history.
type StatsRepo interface {
	LessonStats(ctx context.Context) (*LessonStats, error)
	NoteStats(ctx context.Context) (*NoteStats, error)
	LLMStats(ctx context.Context) (*LLMStats, error)
	RecentLessons(ctx context.Context, limit int) ([]LessonEvent, error)
}
