package premium

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dmehra/learnly/internal/llm"
	"github.com/dmehra/learnly/internal/store"
)

type fakeHistory struct {
	events []store.LessonEvent
	err    error
}

func (f *fakeHistory) RecentLessons(_ context.Context, _ int) ([]store.LessonEvent, error) {
	return f.events, f.err
}

func newDirectGateway(mock *llm.MockProvider, history lessonHistory) *DirectGateway {
	if history == nil {
		history = &fakeHistory{}
	}
	return NewDirectGateway(mock, history, DefaultDirectConfig())
}

func TestDirectChat(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"A slice header holds a pointer, length and capacity."`)},
	)
	g := newDirectGateway(mock, nil)

	reply, err := g.Chat(context.Background(), "what is a slice?", "Chapter text about slices.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != "A slice header holds a pointer, length and capacity." {
		t.Errorf("unexpected response: %q", reply.Response)
	}

	// The lesson context must reach the model.
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	sent := mock.Calls[0].Messages[0].Content
	if !strings.Contains(sent, "Chapter text about slices.") {
		t.Errorf("lesson context missing from prompt: %q", sent)
	}
	if !strings.Contains(sent, "what is a slice?") {
		t.Errorf("question missing from prompt: %q", sent)
	}
}

func TestDirectChatWithoutContext(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"sure"`)},
	)
	g := newDirectGateway(mock, nil)

	_, err := g.Chat(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mock.Calls[0].Messages[0].Content; got != "hello" {
		t.Errorf("expected bare message, got %q", got)
	}
}

func TestDirectGrade(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{
			"score": 4,
			"feedback": {"accuracy": "correct", "clarity": "could name the zero value"},
			"reasoning": "Covers the main point with one omission."
		}`)},
	)
	g := newDirectGateway(mock, nil)

	result, err := g.Grade(context.Background(), "ch-1", "q-3", "A channel synchronizes goroutines.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 4 {
		t.Errorf("score = %d, want 4", result.Score)
	}
	if result.Feedback["accuracy"] != "correct" {
		t.Errorf("feedback = %v", result.Feedback)
	}
	if result.Reasoning == "" {
		t.Error("expected non-empty reasoning")
	}

	if mock.Calls[0].Schema != gradeSchema {
		t.Error("expected grade schema on request")
	}
}

func TestDirectGradeProviderError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrUnauthorized{Err: errors.New("bad key")}},
	)
	g := newDirectGateway(mock, nil)

	_, err := g.Grade(context.Background(), "ch-1", "q-3", "answer")
	if Classify(err) != OutcomePremiumRequired {
		t.Errorf("Classify = %q, want %q", Classify(err), OutcomePremiumRequired)
	}
}

func TestDirectAdaptivePath(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{
			"weak_topics": ["concurrency"],
			"recommendations": [
				{"topic": "concurrency", "reason": "quiz 1/5 on channels", "action_item": "redo the channels chapter", "priority": "high"}
			]
		}`)},
	)
	history := &fakeHistory{events: []store.LessonEvent{
		{LessonTitle: "Channels", QuizTotal: 5, QuizCorrect: 1, Completed: true},
		{LessonTitle: "Slices", QuizTotal: 4, QuizCorrect: 4, Completed: true},
	}}
	g := newDirectGateway(mock, history)

	path, err := g.AdaptivePath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.WeakTopics) != 1 || path.WeakTopics[0] != "concurrency" {
		t.Errorf("weak topics = %v", path.WeakTopics)
	}
	if len(path.Recommendations) != 1 {
		t.Fatalf("recommendations = %v", path.Recommendations)
	}
	if path.Recommendations[0].Priority != "high" {
		t.Errorf("priority = %q, want high", path.Recommendations[0].Priority)
	}

	// The quiz history must reach the model.
	sent := mock.Calls[0].Messages[0].Content
	if !strings.Contains(sent, "Channels") || !strings.Contains(sent, "1/5") {
		t.Errorf("history missing from prompt: %q", sent)
	}
}

func TestDirectAdaptivePathEmptyHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"weak_topics": [], "recommendations": []}`)},
	)
	g := newDirectGateway(mock, &fakeHistory{})

	path, err := g.AdaptivePath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.WeakTopics) != 0 {
		t.Errorf("weak topics = %v, want none", path.WeakTopics)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "No lesson history") {
		t.Error("expected empty-history marker in prompt")
	}
}
