package premium

import (
	"context"
	"testing"

	"github.com/dmehra/learnly/internal/api"
)

type fakePremiumAPI struct {
	chatReply *api.ChatReply
	grade     *api.GradeFeedback
	path      *api.AdaptivePath
	err       error

	lastMessage string
	lastContext string
}

func (f *fakePremiumAPI) PremiumChat(_ context.Context, message, lessonContext string) (*api.ChatReply, error) {
	f.lastMessage = message
	f.lastContext = lessonContext
	if f.err != nil {
		return nil, f.err
	}
	return f.chatReply, nil
}

func (f *fakePremiumAPI) PremiumGrade(_ context.Context, _, _, _ string) (*api.GradeFeedback, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grade, nil
}

func (f *fakePremiumAPI) PremiumAdaptivePath(_ context.Context) (*api.AdaptivePath, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.path, nil
}

func TestAPIGatewayChat(t *testing.T) {
	client := &fakePremiumAPI{chatReply: &api.ChatReply{Response: "try a range loop"}}
	g := NewAPIGateway(client)

	reply, err := g.Chat(context.Background(), "how do I iterate?", "chapter text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != "try a range loop" {
		t.Errorf("response = %q", reply.Response)
	}
	if client.lastMessage != "how do I iterate?" || client.lastContext != "chapter text" {
		t.Error("message or context not forwarded")
	}
}

func TestAPIGatewayGrade(t *testing.T) {
	client := &fakePremiumAPI{grade: &api.GradeFeedback{
		Score:     3,
		Feedback:  map[string]any{"clarity": "good"},
		Reasoning: "partially correct",
	}}
	g := NewAPIGateway(client)

	result, err := g.Grade(context.Background(), "ch-1", "q-2", "my answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 3 || result.Reasoning != "partially correct" {
		t.Errorf("result = %+v", result)
	}
}

func TestAPIGatewayAdaptivePath(t *testing.T) {
	client := &fakePremiumAPI{path: &api.AdaptivePath{
		WeakTopics: []string{"pointers"},
		Recommendations: []api.Recommendation{
			{Topic: "pointers", Reason: "low quiz scores", ActionItem: "reread chapter 4", Priority: "medium"},
		},
	}}
	g := NewAPIGateway(client)

	path, err := g.AdaptivePath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.Recommendations) != 1 || path.Recommendations[0].Topic != "pointers" {
		t.Errorf("path = %+v", path)
	}
}

func TestAPIGatewayForbiddenPassesThrough(t *testing.T) {
	client := &fakePremiumAPI{err: &api.ErrForbidden{Op: "premium chat"}}
	g := NewAPIGateway(client)

	_, err := g.Chat(context.Background(), "hi", "")
	if Classify(err) != OutcomePremiumRequired {
		t.Errorf("Classify = %q, want %q", Classify(err), OutcomePremiumRequired)
	}
}
