package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// statsRepo implements StatsRepo with aggregate queries over the event tables.
type statsRepo struct {
	db *gorm.DB
}

func (r *statsRepo) LessonStats(ctx context.Context) (*LessonStats, error) {
	var row struct {
		Sessions    int
		Completed   int
		QuizTotal   int
		QuizCorrect int
		TimeSpentS  int
	}
	err := r.db.WithContext(ctx).Model(&LessonEvent{}).
		Select(
			"COUNT(*) AS sessions",
			"COALESCE(SUM(completed), 0) AS completed",
			"COALESCE(SUM(quiz_total), 0) AS quiz_total",
			"COALESCE(SUM(quiz_correct), 0) AS quiz_correct",
			"COALESCE(SUM(time_spent_s), 0) AS time_spent_s",
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("lesson stats: %w", err)
	}

	stats := &LessonStats{
		Sessions:    row.Sessions,
		Completed:   row.Completed,
		QuizTotal:   row.QuizTotal,
		QuizCorrect: row.QuizCorrect,
		TimeSpentS:  row.TimeSpentS,
	}

	if row.Sessions > 0 {
		var last LessonEvent
		err = r.db.WithContext(ctx).Order("created_at DESC").First(&last).Error
		if err != nil {
			return nil, fmt.Errorf("last lesson event: %w", err)
		}
		stats.LastActivity = last.CreatedAt
	}
	return stats, nil
}

func (r *statsRepo) NoteStats(ctx context.Context) (*NoteStats, error) {
	var row struct {
		Saves    int
		Failures int
		Attempts int
	}
	err := r.db.WithContext(ctx).Model(&NoteSaveEvent{}).
		Select(
			"COALESCE(SUM(success), 0) AS saves",
			"COALESCE(SUM(CASE WHEN success = 0 AND aborted = 0 THEN 1 ELSE 0 END), 0) AS failures",
			"COALESCE(SUM(attempts), 0) AS attempts",
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("note stats: %w", err)
	}

	// Retries is attempts beyond the first per save cycle.
	var cycles int64
	if err := r.db.WithContext(ctx).Model(&NoteSaveEvent{}).Count(&cycles).Error; err != nil {
		return nil, fmt.Errorf("note cycles: %w", err)
	}
	retries := row.Attempts - int(cycles)
	if retries < 0 {
		retries = 0
	}

	return &NoteStats{
		Saves:    row.Saves,
		Failures: row.Failures,
		Retries:  retries,
	}, nil
}

func (r *statsRepo) LLMStats(ctx context.Context) (*LLMStats, error) {
	var row struct {
		Requests     int
		InputTokens  int
		OutputTokens int
		Failures     int
	}
	err := r.db.WithContext(ctx).Model(&LLMRequestEvent{}).
		Select(
			"COUNT(*) AS requests",
			"COALESCE(SUM(input_tokens), 0) AS input_tokens",
			"COALESCE(SUM(output_tokens), 0) AS output_tokens",
			"COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) AS failures",
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("llm stats: %w", err)
	}
	return &LLMStats{
		Requests:     row.Requests,
		InputTokens:  row.InputTokens,
		OutputTokens: row.OutputTokens,
		Failures:     row.Failures,
	}, nil
}

func (r *statsRepo) RecentLessons(ctx context.Context, limit int) ([]LessonEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	var events []LessonEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("recent lessons: %w", err)
	}
	return events, nil
}
