package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmehra/learnly/internal/api"
)

func TestSaveNoteEmptyFailsFast(t *testing.T) {
	c, d := newTestController(t)
	loadLesson(t, c)

	_, err := c.SaveNote(context.Background(), "   \n\t ")
	if !errors.Is(err, ErrEmptyNote) {
		t.Fatalf("expected ErrEmptyNote, got %v", err)
	}

	creates, updates := d.notes.calls()
	if creates != 0 || updates != 0 {
		t.Errorf("expected zero network calls, got %d creates %d updates", creates, updates)
	}
}

func TestSaveNoteEmptyAllowedWhenNoteExists(t *testing.T) {
	// Clearing an existing note is a legitimate update.
	c, d := newTestController(t)
	d.notes.note = &api.Note{Slug: "go-slices", Content: "old"}
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, handle)

	if handle.Err() != nil {
		t.Fatalf("save failed: %v", handle.Err())
	}
	_, updates := d.notes.calls()
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
}

func TestSaveNoteCreatesThenUpdates(t *testing.T) {
	c, d := newTestController(t)
	loadLesson(t, c)

	first, err := c.SaveNote(context.Background(), "first draft")
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, first)
	if first.Err() != nil {
		t.Fatalf("first save: %v", first.Err())
	}
	if !c.NoteExists() {
		t.Fatal("note should be tracked as existing after a successful create")
	}

	second, err := c.SaveNote(context.Background(), "second draft")
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, second)
	if second.Err() != nil {
		t.Fatalf("second save: %v", second.Err())
	}

	creates, updates := d.notes.calls()
	if creates != 1 || updates != 1 {
		t.Errorf("creates = %d updates = %d, want 1 and 1", creates, updates)
	}
	if c.NoteContent() != "second draft" {
		t.Errorf("note content = %q", c.NoteContent())
	}
}

func TestSaveNoteRetriesExactlyThreeTimes(t *testing.T) {
	c, d := newTestController(t)
	storeErr := &api.ErrTransport{Op: "create note", Err: errors.New("server unreachable")}
	d.notes.createFn = func() error { return storeErr }
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "doomed note")
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, handle)

	// 1 initial + 3 retries, then give up.
	if handle.Attempts() != 4 {
		t.Errorf("attempts = %d, want 4", handle.Attempts())
	}

	var nsf *ErrNoteSaveFailed
	if !errors.As(handle.Err(), &nsf) {
		t.Fatalf("expected ErrNoteSaveFailed, got %v", handle.Err())
	}
	if nsf.Attempts != 4 {
		t.Errorf("error attempts = %d, want 4", nsf.Attempts)
	}
	if !errors.Is(nsf, storeErr) {
		t.Error("expected last underlying error to be wrapped")
	}

	creates, _ := d.notes.calls()
	if creates != 4 {
		t.Errorf("store calls = %d, want 4", creates)
	}
}

func TestSaveNoteSucceedsMidRetry(t *testing.T) {
	c, d := newTestController(t)
	failures := 2
	d.notes.createFn = func() error {
		if failures > 0 {
			failures--
			return &api.ErrTransport{Op: "create note", Err: errors.New("flaky")}
		}
		return nil
	}
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "persistent note")
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, handle)

	if handle.Err() != nil {
		t.Fatalf("save should recover: %v", handle.Err())
	}
	if handle.Attempts() != 3 {
		t.Errorf("attempts = %d, want 3", handle.Attempts())
	}
	if !c.NoteExists() {
		t.Error("note should be tracked after recovery")
	}
}

func TestNewSaveSupersedesInFlightOne(t *testing.T) {
	c, d := newTestController(t)
	c.cfg.NoteRetryDelay = 50 * time.Millisecond
	c.saver.delay = 50 * time.Millisecond
	d.notes.createFn = func() error {
		return &api.ErrTransport{Op: "create note", Err: errors.New("down")}
	}
	loadLesson(t, c)

	first, err := c.SaveNote(context.Background(), "stale draft")
	if err != nil {
		t.Fatal(err)
	}

	// Let the first attempt fail and enter its retry delay.
	time.Sleep(10 * time.Millisecond)

	d.notes.setCreateFn(nil) // second save succeeds immediately
	second, err := c.SaveNote(context.Background(), "fresh draft")
	if err != nil {
		t.Fatal(err)
	}

	waitDone(t, first)
	waitDone(t, second)

	if !first.Aborted() {
		t.Error("superseded save must be aborted, not run to completion")
	}
	if second.Err() != nil {
		t.Fatalf("superseding save failed: %v", second.Err())
	}
	if c.NoteContent() != "fresh draft" {
		t.Errorf("note content = %q, want the newer draft", c.NoteContent())
	}
}

func TestAbortStopsRetries(t *testing.T) {
	c, d := newTestController(t)
	c.saver.delay = 50 * time.Millisecond
	d.notes.createFn = func() error {
		return &api.ErrTransport{Op: "create note", Err: errors.New("down")}
	}
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "abandoned note")
	if err != nil {
		t.Fatal(err)
	}

	// Abort while the cycle sits in its first retry delay.
	time.Sleep(10 * time.Millisecond)
	c.AbortNoteSave()

	waitDone(t, handle)

	if !handle.Aborted() {
		t.Fatal("expected aborted cycle")
	}
	if handle.Attempts() != 1 {
		t.Errorf("attempts = %d, want 1 (no retry after abort)", handle.Attempts())
	}

	// No further attempts land after the abort.
	creates, _ := d.notes.calls()
	time.Sleep(120 * time.Millisecond)
	after, _ := d.notes.calls()
	if after != creates {
		t.Errorf("attempts continued after abort: %d -> %d", creates, after)
	}
}

func TestCloseAbortsInFlightSave(t *testing.T) {
	c, d := newTestController(t)
	c.saver.delay = 50 * time.Millisecond
	d.notes.createFn = func() error {
		return &api.ErrTransport{Op: "create note", Err: errors.New("down")}
	}
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "note at exit")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)
	c.Close(context.Background())

	waitDone(t, handle)
	if !handle.Aborted() {
		t.Error("navigating away must abort the in-flight save")
	}
}

func TestNoteSaveDoesNotBlockQuiz(t *testing.T) {
	c, d := newTestController(t)
	c.saver.delay = 50 * time.Millisecond
	d.notes.createFn = func() error {
		return &api.ErrTransport{Op: "create note", Err: errors.New("down")}
	}
	loadLesson(t, c)

	handle, err := c.SaveNote(context.Background(), "background note")
	if err != nil {
		t.Fatal(err)
	}

	// Quiz interaction proceeds while the note retries in background.
	if err := c.StartQuiz(); err != nil {
		t.Fatalf("start quiz during note save: %v", err)
	}
	mustFinishQuiz(t, c)

	c.AbortNoteSave()
	waitDone(t, handle)
}
