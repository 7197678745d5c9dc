package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil gorm handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := s.DB().Raw("PRAGMA " + tt.pragma).Scan(&got).Error
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{
		"lesson_events",
		"note_save_events",
		"llm_request_events",
		"premium_request_events",
	} {
		var name string
		err := s.DB().Raw(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name).Error
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		if name != table {
			t.Errorf("table %q missing", table)
		}
	}
}

func TestAppendAndAggregateLessonEvents(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	sessions := []LessonEventData{
		{SessionID: "s1", LessonSlug: "intro", LessonTitle: "Intro", QuizTotal: 5, QuizCorrect: 4, TimeSpentS: 120, Completed: true},
		{SessionID: "s2", LessonSlug: "loops", LessonTitle: "Loops", QuizTotal: 3, QuizCorrect: 3, TimeSpentS: 90, Completed: true},
		{SessionID: "s3", LessonSlug: "maps", LessonTitle: "Maps", QuizTotal: 0, QuizCorrect: 0, TimeSpentS: 45, Completed: false},
	}
	for _, ev := range sessions {
		if err := events.AppendLessonEvent(ctx, ev); err != nil {
			t.Fatalf("append %s: %v", ev.SessionID, err)
		}
	}

	stats, err := s.Stats().LessonStats(ctx)
	if err != nil {
		t.Fatalf("lesson stats: %v", err)
	}
	if stats.Sessions != 3 {
		t.Errorf("sessions = %d, want 3", stats.Sessions)
	}
	if stats.Completed != 2 {
		t.Errorf("completed = %d, want 2", stats.Completed)
	}
	if stats.QuizCorrect != 7 || stats.QuizTotal != 8 {
		t.Errorf("quiz = %d/%d, want 7/8", stats.QuizCorrect, stats.QuizTotal)
	}
	if stats.TimeSpentS != 255 {
		t.Errorf("time spent = %d, want 255", stats.TimeSpentS)
	}
	if stats.LastActivity.IsZero() {
		t.Error("expected non-zero last activity")
	}
}

func TestLessonStatsEmpty(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Stats().LessonStats(context.Background())
	if err != nil {
		t.Fatalf("lesson stats: %v", err)
	}
	if stats.Sessions != 0 {
		t.Errorf("sessions = %d, want 0", stats.Sessions)
	}
	if !stats.LastActivity.IsZero() {
		t.Error("expected zero last activity")
	}
}

func TestNoteStats(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	cycles := []NoteSaveEventData{
		{SessionID: "s1", LessonSlug: "intro", Attempts: 1, Success: true},
		{SessionID: "s1", LessonSlug: "intro", Attempts: 3, Success: true},
		{SessionID: "s2", LessonSlug: "loops", Attempts: 4, Success: false, ErrorMsg: "server unreachable"},
		{SessionID: "s2", LessonSlug: "loops", Attempts: 2, Success: false, Aborted: true},
	}
	for i, ev := range cycles {
		if err := events.AppendNoteSave(ctx, ev); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := s.Stats().NoteStats(ctx)
	if err != nil {
		t.Fatalf("note stats: %v", err)
	}
	if stats.Saves != 2 {
		t.Errorf("saves = %d, want 2", stats.Saves)
	}
	if stats.Failures != 1 {
		t.Errorf("failures = %d, want 1 (aborted cycles don't count)", stats.Failures)
	}
	// 10 attempts across 4 cycles leaves 6 retries.
	if stats.Retries != 6 {
		t.Errorf("retries = %d, want 6", stats.Retries)
	}
}

func TestLLMStats(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	reqs := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m", Purpose: "chat", InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true},
		{Provider: "anthropic", Model: "m", Purpose: "grade", InputTokens: 200, OutputTokens: 80, LatencyMs: 1200, Success: true},
		{Provider: "anthropic", Model: "m", Purpose: "chat", Success: false, ErrorMessage: "rate limited"},
	}
	for i, ev := range reqs {
		if err := events.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := s.Stats().LLMStats(ctx)
	if err != nil {
		t.Fatalf("llm stats: %v", err)
	}
	if stats.Requests != 3 {
		t.Errorf("requests = %d, want 3", stats.Requests)
	}
	if stats.InputTokens != 300 || stats.OutputTokens != 130 {
		t.Errorf("tokens = %d/%d, want 300/130", stats.InputTokens, stats.OutputTokens)
	}
	if stats.Failures != 1 {
		t.Errorf("failures = %d, want 1", stats.Failures)
	}
}

func TestRecentLessonsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := events.AppendLessonEvent(ctx, LessonEventData{
			SessionID:  "s",
			LessonSlug: "lesson",
			QuizTotal:  i,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recent, err := s.Stats().RecentLessons(ctx, 3)
	if err != nil {
		t.Fatalf("recent lessons: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
}

func TestAppendPremiumRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.Events().AppendPremiumRequest(ctx, PremiumRequestEventData{
		SessionID: "s1",
		Feature:   "chat",
		Outcome:   "premium_required",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var count int64
	if err := s.DB().Model(&PremiumRequestEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
