package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// eventRepo implements EventRecorder backed by gorm.
type eventRepo struct {
	db *gorm.DB
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	ev := LessonEvent{
		SessionID:   data.SessionID,
		LessonSlug:  data.LessonSlug,
		LessonTitle: data.LessonTitle,
		QuizTotal:   data.QuizTotal,
		QuizCorrect: data.QuizCorrect,
		TimeSpentS:  data.TimeSpentS,
		Completed:   data.Completed,
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendNoteSave(ctx context.Context, data NoteSaveEventData) error {
	ev := NoteSaveEvent{
		SessionID:  data.SessionID,
		LessonSlug: data.LessonSlug,
		Attempts:   data.Attempts,
		Success:    data.Success,
		Aborted:    data.Aborted,
		ErrorMsg:   data.ErrorMsg,
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("save note event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	ev := LLMRequestEvent{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMsg:     data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendPremiumRequest(ctx context.Context, data PremiumRequestEventData) error {
	ev := PremiumRequestEvent{
		SessionID: data.SessionID,
		Feature:   data.Feature,
		Outcome:   data.Outcome,
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("save premium request event: %w", err)
	}
	return nil
}
