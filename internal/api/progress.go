package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ProgressRecord is the per-lesson completion state the service keeps.
// Writes are upserts: a later write for the same slug supersedes the
// prior one, there is no history.
type ProgressRecord struct {
	Slug      string `json:"chapter_slug"`
	Completed bool   `json:"completed"`
	QuizScore *int   `json:"quiz_score"`
}

// ProgressUpsert is the write payload for SaveProgress.
type ProgressUpsert struct {
	Slug         string `json:"chapter_slug"`
	Completed    bool   `json:"is_completed"`
	QuizScore    *int   `json:"quiz_score,omitempty"`
	TimeSpentMin int    `json:"time_spent"`
}

// ProgressSummary is the aggregate completion state across the course.
type ProgressSummary struct {
	Percentage float64 `json:"percentage"`
}

type wireProgress struct {
	Completed bool `json:"completed"`
	QuizScore *int `json:"quiz_score"`
}

// Progress fetches the completion record for one lesson. Absence is
// reported as ErrNotFound; callers treat it as "not completed yet".
func (c *Client) Progress(ctx context.Context, slug string) (*ProgressRecord, error) {
	op := fmt.Sprintf("progress %s", slug)
	var w wireProgress
	path := fmt.Sprintf("/progress/%s", url.PathEscape(slug))
	if err := c.do(ctx, op, http.MethodGet, path, nil, &w); err != nil {
		return nil, err
	}
	return &ProgressRecord{Slug: slug, Completed: w.Completed, QuizScore: w.QuizScore}, nil
}

// SaveProgress upserts the completion record for one lesson.
func (c *Client) SaveProgress(ctx context.Context, up ProgressUpsert) error {
	op := fmt.Sprintf("save progress %s", up.Slug)
	return c.do(ctx, op, http.MethodPost, "/progress/", up, nil)
}

// ProgressSummary returns the aggregate completion percentage.
func (c *Client) ProgressSummary(ctx context.Context) (*ProgressSummary, error) {
	var out ProgressSummary
	if err := c.do(ctx, "progress summary", http.MethodGet, "/users/me/progress/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
