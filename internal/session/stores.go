package session

import (
	"context"

	"github.com/dmehra/learnly/internal/api"
)

// The controller consumes narrow slices of the HTTP client so tests can
// substitute fakes per concern.

// ContentStore resolves a lesson slug to content and navigation.
type ContentStore interface {
	Lesson(ctx context.Context, slug string) (*api.Lesson, error)
}

// ProgressStore persists per-lesson completion state.
type ProgressStore interface {
	Progress(ctx context.Context, slug string) (*api.ProgressRecord, error)
	SaveProgress(ctx context.Context, up api.ProgressUpsert) error
}

// NotesStore persists one free-text note per lesson. Create and update
// are distinct operations with different idempotency.
type NotesStore interface {
	Note(ctx context.Context, slug string) (*api.Note, error)
	CreateNote(ctx context.Context, slug, content string) error
	UpdateNote(ctx context.Context, slug, content string) error
}

// BookmarkStore persists the user's bookmark list.
type BookmarkStore interface {
	Bookmarks(ctx context.Context) ([]api.Bookmark, error)
	AddBookmark(ctx context.Context, slug, title string) error
	RemoveBookmark(ctx context.Context, slug string) error
}
