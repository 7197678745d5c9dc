package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Note is the free-text note a user keeps per lesson.
type Note struct {
	Slug    string
	Content string
}

type wireNote struct {
	Content string `json:"content"`
}

type noteRequest struct {
	Content     string `json:"content"`
	ChapterSlug string `json:"chapter_slug"`
}

// Note fetches the saved note for a lesson. ErrNotFound means no note
// exists yet.
func (c *Client) Note(ctx context.Context, slug string) (*Note, error) {
	op := fmt.Sprintf("note %s", slug)
	var w wireNote
	path := fmt.Sprintf("/notes/%s", url.PathEscape(slug))
	if err := c.do(ctx, op, http.MethodGet, path, nil, &w); err != nil {
		return nil, err
	}
	return &Note{Slug: slug, Content: w.Content}, nil
}

// CreateNote creates the first note for a lesson. The create and update
// paths are distinct remote operations with different idempotency: create
// conflicts (ErrConflict) when a note already exists.
func (c *Client) CreateNote(ctx context.Context, slug, content string) error {
	op := fmt.Sprintf("create note %s", slug)
	body := noteRequest{Content: content, ChapterSlug: slug}
	return c.do(ctx, op, http.MethodPost, "/notes/", body, nil)
}

// UpdateNote overwrites an existing note. Fails with ErrNotFound when no
// note exists.
func (c *Client) UpdateNote(ctx context.Context, slug, content string) error {
	op := fmt.Sprintf("update note %s", slug)
	body := noteRequest{Content: content, ChapterSlug: slug}
	path := fmt.Sprintf("/notes/%s", url.PathEscape(slug))
	return c.do(ctx, op, http.MethodPut, path, body, nil)
}
