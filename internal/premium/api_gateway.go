package premium

import (
	"context"

	"github.com/dmehra/learnly/internal/api"
)

// premiumAPI is the slice of the HTTP client the gateway needs.
type premiumAPI interface {
	PremiumChat(ctx context.Context, message, lessonContext string) (*api.ChatReply, error)
	PremiumGrade(ctx context.Context, chapterID, questionID, answer string) (*api.GradeFeedback, error)
	PremiumAdaptivePath(ctx context.Context) (*api.AdaptivePath, error)
}

// APIGateway serves premium features through the learning service,
// which proxies to its own model. Entitlement is enforced server-side
// and surfaces as api.ErrForbidden.
type APIGateway struct {
	client premiumAPI
}

// NewAPIGateway creates a Gateway backed by the learning service.
func NewAPIGateway(client premiumAPI) *APIGateway {
	return &APIGateway{client: client}
}

func (g *APIGateway) Chat(ctx context.Context, message, lessonContext string) (*ChatReply, error) {
	reply, err := g.client.PremiumChat(ctx, message, lessonContext)
	if err != nil {
		return nil, err
	}
	return &ChatReply{Response: reply.Response}, nil
}

func (g *APIGateway) Grade(ctx context.Context, chapterID, questionID, answer string) (*GradeResult, error) {
	fb, err := g.client.PremiumGrade(ctx, chapterID, questionID, answer)
	if err != nil {
		return nil, err
	}
	return &GradeResult{
		Score:     fb.Score,
		Feedback:  fb.Feedback,
		Reasoning: fb.Reasoning,
	}, nil
}

func (g *APIGateway) AdaptivePath(ctx context.Context) (*AdaptivePath, error) {
	path, err := g.client.PremiumAdaptivePath(ctx)
	if err != nil {
		return nil, err
	}
	out := &AdaptivePath{WeakTopics: path.WeakTopics}
	for _, r := range path.Recommendations {
		out.Recommendations = append(out.Recommendations, Recommendation{
			Topic:      r.Topic,
			Reason:     r.Reason,
			ActionItem: r.ActionItem,
			Priority:   r.Priority,
		})
	}
	return out, nil
}
