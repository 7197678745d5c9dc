package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmehra/learnly/internal/quiz"
)

// Lesson is one chapter's content plus navigation metadata. Immutable
// once fetched.
type Lesson struct {
	Slug     string
	Title    string
	Markdown string
	Quiz     *quiz.Definition // nil for lessons without a quiz
	PrevSlug string
	NextSlug string
	Position int // 1-based ordinal within the course, 0 if unknown
	Total    int // lesson count in the course, 0 if unknown
}

// HasQuiz reports whether the lesson carries a non-empty quiz.
func (l *Lesson) HasQuiz() bool {
	return l.Quiz != nil && l.Quiz.Len() > 0
}

type wireQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type wireQuiz struct {
	Questions []wireQuestion `json:"questions"`
}

type wireLesson struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MarkdownContent string    `json:"markdown_content"`
	NextChapterSlug string    `json:"next_chapter_slug"`
	PrevChapterSlug string    `json:"prev_chapter_slug"`
	Quiz            *wireQuiz `json:"quiz"`
}

// Lesson fetches a chapter's content, quiz and prev/next navigation.
func (c *Client) Lesson(ctx context.Context, slug string) (*Lesson, error) {
	op := fmt.Sprintf("lesson %s", slug)
	var w wireLesson
	path := fmt.Sprintf("/chapters/%s/content", url.PathEscape(slug))
	if err := c.do(ctx, op, http.MethodGet, path, nil, &w); err != nil {
		return nil, err
	}

	lesson := &Lesson{
		Slug:     slug,
		Title:    w.Title,
		Markdown: w.MarkdownContent,
		PrevSlug: w.PrevChapterSlug,
		NextSlug: w.NextChapterSlug,
	}
	if w.Quiz != nil && len(w.Quiz.Questions) > 0 {
		lesson.Quiz = &quiz.Definition{Questions: decodeQuestions(w.Quiz.Questions)}
	}
	return lesson, nil
}

// decodeQuestions normalizes wire questions into quiz questions. The
// service marks essays either explicitly ("essay") or implicitly by
// shipping no options.
func decodeQuestions(in []wireQuestion) []quiz.Question {
	out := make([]quiz.Question, len(in))
	for i, q := range in {
		kind := quiz.KindChoice
		if q.Type == "essay" || len(q.Options) == 0 {
			kind = quiz.KindEssay
		}
		out[i] = quiz.Question{
			ID:     q.ID,
			Prompt: q.Text,
			Kind:   kind,
		}
		if kind == quiz.KindChoice {
			out[i].Options = q.Options
			out[i].CorrectIndex = q.CorrectAnswer
		}
	}
	return out
}

// ChapterRef is one entry of a course's ordered chapter listing.
type ChapterRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type wireModule struct {
	Title    string       `json:"title"`
	Chapters []ChapterRef `json:"chapters"`
}

type wireStructure struct {
	Title   string       `json:"title"`
	Modules []wireModule `json:"modules"`
}

// CourseChapters returns the ordered chapter listing of a course,
// flattened across modules.
func (c *Client) CourseChapters(ctx context.Context, courseSlug string) ([]ChapterRef, error) {
	op := fmt.Sprintf("course structure %s", courseSlug)
	var w wireStructure
	path := fmt.Sprintf("/courses/%s/structure", url.PathEscape(courseSlug))
	if err := c.do(ctx, op, http.MethodGet, path, nil, &w); err != nil {
		return nil, err
	}
	var refs []ChapterRef
	for _, m := range w.Modules {
		refs = append(refs, m.Chapters...)
	}
	return refs, nil
}

// Course is one entry of the course catalog.
type Course struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Courses lists the course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := c.do(ctx, "list courses", http.MethodGet, "/courses/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
