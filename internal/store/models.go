package store

import "time"

// LessonEvent records the outcome of a completed lesson session.
type LessonEvent struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"index"`
	SessionID   string    `gorm:"size:36;index"`
	LessonSlug  string    `gorm:"size:255;index"`
	LessonTitle string    `gorm:"size:255"`
	QuizTotal   int
	QuizCorrect int
	TimeSpentS  int
	Completed   bool
}

// NoteSaveEvent records a finished note save cycle, including how many
// attempts it took and whether it ultimately landed.
type NoteSaveEvent struct {
	ID         uint      `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
	SessionID  string    `gorm:"size:36;index"`
	LessonSlug string    `gorm:"size:255;index"`
	Attempts   int
	Success    bool
	Aborted    bool
	ErrorMsg   string `gorm:"size:1024"`
}

// LLMRequestEvent records a single LLM API call.
type LLMRequestEvent struct {
	ID           uint      `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"index"`
	Provider     string    `gorm:"size:64"`
	Model        string    `gorm:"size:128"`
	Purpose      string    `gorm:"size:32;index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMsg     string `gorm:"size:1024"`
}

// PremiumRequestEvent records an attempt to use a premium feature and
// how the gateway classified the result.
type PremiumRequestEvent struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	SessionID string    `gorm:"size:36;index"`
	Feature   string    `gorm:"size:32;index"`
	Outcome   string    `gorm:"size:32"`
}
