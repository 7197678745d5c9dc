package premium

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmehra/learnly/internal/llm"
	"github.com/dmehra/learnly/internal/store"
)

// lessonHistory is the slice of the stats store the planner needs.
type lessonHistory interface {
	RecentLessons(ctx context.Context, limit int) ([]store.LessonEvent, error)
}

// DirectConfig tunes the bring-your-own-key gateway.
type DirectConfig struct {
	MaxTokens   int
	Temperature float64
	HistorySize int
}

// DefaultDirectConfig returns sensible defaults for tutoring traffic.
func DefaultDirectConfig() DirectConfig {
	return DirectConfig{
		MaxTokens:   1024,
		Temperature: 0.7,
		HistorySize: 20,
	}
}

// DirectGateway serves premium features against the user's own LLM
// provider key, bypassing the learning service. A rejected key surfaces
// as llm.ErrUnauthorized, which Classify maps the same way as a
// server-side entitlement failure.
type DirectGateway struct {
	provider llm.Provider
	history  lessonHistory
	config   DirectConfig
}

// NewDirectGateway creates a bring-your-own-key Gateway.
func NewDirectGateway(provider llm.Provider, history lessonHistory, cfg DirectConfig) *DirectGateway {
	return &DirectGateway{provider: provider, history: history, config: cfg}
}

func (g *DirectGateway) Chat(ctx context.Context, message, lessonContext string) (*ChatReply, error) {
	ctx = llm.WithPurpose(ctx, "chat")

	req := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildChatMessage(message, lessonContext)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tutor chat: %w", err)
	}
	return &ChatReply{Response: resp.Text()}, nil
}

// gradeOutput is the raw LLM response before mapping.
type gradeOutput struct {
	Score     int               `json:"score"`
	Feedback  map[string]string `json:"feedback"`
	Reasoning string            `json:"reasoning"`
}

func (g *DirectGateway) Grade(ctx context.Context, chapterID, questionID, answer string) (*GradeResult, error) {
	ctx = llm.WithPurpose(ctx, "grade")

	req := llm.Request{
		System: graderSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradeMessage(chapterID, questionID, answer)},
		},
		Schema:      gradeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0.2,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("essay grading: %w", err)
	}

	var raw gradeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse grade response: %w", err)
	}

	feedback := make(map[string]any, len(raw.Feedback))
	for k, v := range raw.Feedback {
		feedback[k] = v
	}
	return &GradeResult{
		Score:     raw.Score,
		Feedback:  feedback,
		Reasoning: raw.Reasoning,
	}, nil
}

// pathOutput is the raw LLM response before mapping.
type pathOutput struct {
	WeakTopics      []string `json:"weak_topics"`
	Recommendations []struct {
		Topic      string `json:"topic"`
		Reason     string `json:"reason"`
		ActionItem string `json:"action_item"`
		Priority   string `json:"priority"`
	} `json:"recommendations"`
}

func (g *DirectGateway) AdaptivePath(ctx context.Context) (*AdaptivePath, error) {
	ctx = llm.WithPurpose(ctx, "adaptive")

	events, err := g.history.RecentLessons(ctx, g.config.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("load lesson history: %w", err)
	}

	req := llm.Request{
		System: plannerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHistoryMessage(events)},
		},
		Schema:      pathSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0.4,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("adaptive path: %w", err)
	}

	var raw pathOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse path response: %w", err)
	}

	out := &AdaptivePath{WeakTopics: raw.WeakTopics}
	for _, r := range raw.Recommendations {
		out.Recommendations = append(out.Recommendations, Recommendation(r))
	}
	return out, nil
}
