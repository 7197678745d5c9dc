package api

import (
	"context"
	"net/http"
)

// ChatReply is the AI tutor's answer to one message.
type ChatReply struct {
	Response string `json:"response"`
}

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// GradeFeedback is the AI grading result for one essay answer.
type GradeFeedback struct {
	Score     int            `json:"score"` // 0..5
	Feedback  map[string]any `json:"feedback"`
	Reasoning string         `json:"reasoning"`
}

type gradeRequest struct {
	ChapterID  string `json:"chapter_id"`
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// Recommendation is one adaptive-path study suggestion.
type Recommendation struct {
	Topic      string `json:"topic"`
	Reason     string `json:"reason"`
	ActionItem string `json:"action_item"`
	Priority   string `json:"priority"`
}

// AdaptivePath is the AI-generated study plan built from quiz history.
type AdaptivePath struct {
	WeakTopics      []string         `json:"weak_topics"`
	Recommendations []Recommendation `json:"recommendations"`
}

// PremiumChat sends a tutoring message with lesson context. Entitlement
// failures come back as ErrForbidden, throttling as ErrRateLimited.
func (c *Client) PremiumChat(ctx context.Context, message, lessonContext string) (*ChatReply, error) {
	var out ChatReply
	body := chatRequest{Message: message, Context: lessonContext}
	if err := c.do(ctx, "premium chat", http.MethodPost, "/premium/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PremiumGrade asks the service to grade an essay answer.
func (c *Client) PremiumGrade(ctx context.Context, chapterID, questionID, answer string) (*GradeFeedback, error) {
	var out GradeFeedback
	body := gradeRequest{ChapterID: chapterID, QuestionID: questionID, UserAnswer: answer}
	if err := c.do(ctx, "premium grade", http.MethodPost, "/premium/grade", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PremiumAdaptivePath fetches the personalized study path.
func (c *Client) PremiumAdaptivePath(ctx context.Context) (*AdaptivePath, error) {
	var out AdaptivePath
	if err := c.do(ctx, "adaptive path", http.MethodGet, "/premium/adaptive-path", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
