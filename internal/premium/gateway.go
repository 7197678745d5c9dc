package premium

import (
	"context"
	"errors"

	"github.com/dmehra/learnly/internal/api"
	"github.com/dmehra/learnly/internal/llm"
)

// Feature identifies a premium capability.
type Feature string

const (
	FeatureChat         Feature = "chat"
	FeatureGrading      Feature = "grading"
	FeatureAdaptivePath Feature = "adaptive-path"
)

// Outcome classifies the result of a premium request so callers can
// show the right message: upgrade prompt, back-off hint, or plain error.
type Outcome string

const (
	OutcomeGranted         Outcome = "granted"
	OutcomePremiumRequired Outcome = "premium_required"
	OutcomeRateLimited     Outcome = "rate_limited"
	OutcomeUnavailable     Outcome = "unavailable"
)

// ChatReply is a tutor chat response.
type ChatReply struct {
	Response string
}

// GradeResult is structured feedback for an essay answer. Score is on
// a 0..5 scale; Feedback maps rubric dimensions to comments.
type GradeResult struct {
	Score     int
	Feedback  map[string]any
	Reasoning string
}

// Recommendation suggests a next step for a weak topic.
type Recommendation struct {
	Topic      string
	Reason     string
	ActionItem string
	Priority   string
}

// AdaptivePath is a personalized study plan.
type AdaptivePath struct {
	WeakTopics      []string
	Recommendations []Recommendation
}

// Gateway provides premium features. Implementations differ in where
// the model runs: behind the learning service or against the user's
// own provider key.
type Gateway interface {
	// Chat answers a learner question with lesson context.
	Chat(ctx context.Context, message, lessonContext string) (*ChatReply, error)

	// Grade evaluates an essay answer for a quiz question.
	Grade(ctx context.Context, chapterID, questionID, answer string) (*GradeResult, error)

	// AdaptivePath builds a study plan from the learner's history.
	AdaptivePath(ctx context.Context) (*AdaptivePath, error)
}

// Classify maps an error from a Gateway call to an Outcome. A nil
// error is Granted; entitlement rejections and rate limits are kept
// distinct from transport failures so the caller never shows an
// upgrade prompt for a flaky network.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeGranted
	}

	var forbidden *api.ErrForbidden
	var unauthorized *llm.ErrUnauthorized
	if errors.As(err, &forbidden) || errors.As(err, &unauthorized) {
		return OutcomePremiumRequired
	}

	var apiLimited *api.ErrRateLimited
	var llmLimited *llm.ErrRateLimit
	if errors.As(err, &apiLimited) || errors.As(err, &llmLimited) {
		return OutcomeRateLimited
	}

	return OutcomeUnavailable
}
