package quiz

import (
	"errors"
	"testing"
)

func choiceQ(id string, correct int) Question {
	return Question{
		ID:           id,
		Prompt:       "prompt " + id,
		Kind:         KindChoice,
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: correct,
	}
}

func essayQ(id string) Question {
	return Question{ID: id, Prompt: "prompt " + id, Kind: KindEssay}
}

func TestStart_EmptyQuiz(t *testing.T) {
	_, err := Start(Definition{})
	if !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestStart_InitialPhase(t *testing.T) {
	a, err := Start(Definition{Questions: []Question{choiceQ("q1", 0)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Phase() != PhaseInProgress {
		t.Errorf("Phase = %d, want PhaseInProgress", a.Phase())
	}
	if a.Index() != 0 {
		t.Errorf("Index = %d, want 0", a.Index())
	}
}

func TestSubmit_ChoiceCorrectness(t *testing.T) {
	tests := []struct {
		name    string
		submit  int
		correct bool
	}{
		{"exact match scores", 2, true},
		{"wrong option does not", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 2)}})
			if err := a.Submit(Answer{OptionIndex: tt.submit}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.LastCorrect() != tt.correct {
				t.Errorf("LastCorrect = %v, want %v", a.LastCorrect(), tt.correct)
			}
		})
	}
}

func TestSubmit_ChoiceOutOfRange(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 0)}})
	err := a.Submit(Answer{OptionIndex: 7})
	if !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if a.Phase() != PhaseInProgress {
		t.Errorf("phase advanced on invalid answer")
	}
}

func TestSubmit_EssayEmptyRejected(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{essayQ("q1")}})
	err := a.Submit(Answer{Text: "   \n\t"})
	if !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if a.Phase() != PhaseInProgress {
		t.Errorf("phase advanced on invalid answer")
	}
}

func TestSubmit_EssayAlwaysScoresCorrect(t *testing.T) {
	// Local scoring is a completion proxy: an all-essay quiz always
	// completes with score == question count.
	def := Definition{Questions: []Question{essayQ("q1"), essayQ("q2"), essayQ("q3")}}
	a, _ := Start(def)
	for i := 0; i < 3; i++ {
		if err := a.Submit(Answer{Text: "some answer"}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := a.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if !a.Completed() {
		t.Fatal("expected completed attempt")
	}
	if a.Score() != 3 {
		t.Errorf("Score = %d, want 3", a.Score())
	}
}

func TestSubmit_WriteOnce(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 0), choiceQ("q2", 0)}})
	if err := a.Submit(Answer{OptionIndex: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := a.Submit(Answer{OptionIndex: 1})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on resubmit, got %v", err)
	}
	if a.Score() != 1 {
		t.Errorf("Score = %d, want 1 (resubmit must not rescore)", a.Score())
	}
}

func TestAdvance_RequiresAnswered(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 0)}})
	err := a.Advance()
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if a.Index() != 0 || a.Phase() != PhaseInProgress {
		t.Errorf("state changed on rejected advance")
	}
}

func TestAdvance_SingleQuestionCompletesImmediately(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 1)}})
	if err := a.Submit(Answer{OptionIndex: 1}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := a.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !a.Completed() {
		t.Fatal("expected completed after one submit+advance")
	}
	if a.Score() != 1 {
		t.Errorf("Score = %d, want 1", a.Score())
	}
}

func TestAdvance_AfterCompletedRejected(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 0)}})
	_ = a.Submit(Answer{OptionIndex: 0})
	_ = a.Advance()
	if err := a.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after completion, got %v", err)
	}
}

func TestAttempt_ExactlyNPairsToComplete(t *testing.T) {
	// N submit+advance pairs reach Completed regardless of correctness.
	def := Definition{Questions: []Question{
		choiceQ("q1", 0), choiceQ("q2", 1), essayQ("q3"), choiceQ("q4", 3),
	}}
	a, _ := Start(def)

	pairs := 0
	for !a.Completed() {
		q, err := a.CurrentQuestion()
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		ans := Answer{OptionIndex: 0, Text: "x"}
		if q.Kind == KindChoice {
			ans = Answer{OptionIndex: 0} // mostly wrong on purpose
		}
		if err := a.Submit(ans); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := a.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		pairs++
	}
	if pairs != def.Len() {
		t.Errorf("pairs = %d, want %d", pairs, def.Len())
	}
}

func TestAttempt_AllWrongScoresZero(t *testing.T) {
	def := Definition{Questions: []Question{choiceQ("q1", 1), choiceQ("q2", 2), choiceQ("q3", 3)}}
	a, _ := Start(def)
	for !a.Completed() {
		_ = a.Submit(Answer{OptionIndex: 0})
		_ = a.Advance()
	}
	if a.Score() != 0 {
		t.Errorf("Score = %d, want 0", a.Score())
	}
}

func TestCurrentQuestion_TerminalPhases(t *testing.T) {
	var a Attempt
	if _, err := a.CurrentQuestion(); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("NotStarted: expected ErrNoActiveQuestion, got %v", err)
	}

	done, _ := Start(Definition{Questions: []Question{essayQ("q1")}})
	_ = done.Submit(Answer{Text: "a"})
	_ = done.Advance()
	if _, err := done.CurrentQuestion(); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("Completed: expected ErrNoActiveQuestion, got %v", err)
	}
}

func TestRecorded(t *testing.T) {
	a, _ := Start(Definition{Questions: []Question{choiceQ("q1", 2), choiceQ("q2", 0)}})
	if _, _, ok := a.Recorded(0); ok {
		t.Error("Recorded(0) ok before answering")
	}
	_ = a.Submit(Answer{OptionIndex: 2})
	ans, correct, ok := a.Recorded(0)
	if !ok || !correct || ans.OptionIndex != 2 {
		t.Errorf("Recorded(0) = (%+v, %v, %v)", ans, correct, ok)
	}
	_ = a.Advance()
	if _, _, ok := a.Recorded(1); ok {
		t.Error("Recorded(1) ok before answering")
	}
}
