package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Bookmark marks a lesson the user wants to come back to.
type Bookmark struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type bookmarkRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Bookmarks lists all bookmarks of the current user.
func (c *Client) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	var out []Bookmark
	if err := c.do(ctx, "list bookmarks", http.MethodGet, "/bookmarks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddBookmark bookmarks a lesson.
func (c *Client) AddBookmark(ctx context.Context, slug, title string) error {
	op := fmt.Sprintf("add bookmark %s", slug)
	body := bookmarkRequest{Slug: slug, Title: title, Type: "lesson"}
	return c.do(ctx, op, http.MethodPost, "/bookmarks", body, nil)
}

// RemoveBookmark removes a lesson bookmark.
func (c *Client) RemoveBookmark(ctx context.Context, slug string) error {
	op := fmt.Sprintf("remove bookmark %s", slug)
	path := fmt.Sprintf("/bookmarks/%s", url.PathEscape(slug))
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}
