package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmehra/learnly/internal/api"
	"github.com/dmehra/learnly/internal/premium"
	"github.com/dmehra/learnly/internal/quiz"
	"github.com/dmehra/learnly/internal/store"
)

// Config tunes controller timing. Tests shrink the intervals.
type Config struct {
	NoteRetries    int           // additional attempts after the first
	NoteRetryDelay time.Duration // fixed delay between note attempts
	ReadingTick    time.Duration // reading clock granularity
}

// DefaultConfig returns production timing: 3 note retries at a fixed
// 2s delay, reading time in whole minutes.
func DefaultConfig() Config {
	return Config{
		NoteRetries:    3,
		NoteRetryDelay: 2 * time.Second,
		ReadingTick:    time.Minute,
	}
}

// Deps are the external collaborators of one lesson session.
type Deps struct {
	Content   ContentStore
	Progress  ProgressStore
	Notes     NotesStore
	Bookmarks BookmarkStore
	Gateway   premium.Gateway
	Events    store.EventRecorder // optional, nil disables event logging
}

// Controller owns one lesson's interactive lifecycle: quiz progression,
// completion recording, note persistence with retry, bookmarking, and
// premium-feature gating. One controller per open lesson; all methods
// are safe for concurrent use.
type Controller struct {
	deps Deps
	cfg  Config

	mu              sync.Mutex
	sessionID       string
	phase           Phase
	lesson          *api.Lesson
	attempt         *quiz.Attempt
	completed       bool
	progressWritten bool
	noteExists      bool
	noteContent     string
	bookmarked      bool
	entitlements    map[premium.Feature]premium.Outcome
	startTime       time.Time
	readingMin      int

	saver      noteSaver
	clockStop  context.CancelFunc
	activeSave *NoteSave
}

// New creates a Controller with the given collaborators and timing.
func New(deps Deps, cfg Config) *Controller {
	return &Controller{
		deps:         deps,
		cfg:          cfg,
		sessionID:    uuid.NewString(),
		phase:        PhaseLoading,
		entitlements: make(map[premium.Feature]premium.Outcome),
		saver: noteSaver{
			retries: cfg.NoteRetries,
			delay:   cfg.NoteRetryDelay,
		},
	}
}

// SessionID returns this session's unique ID.
func (c *Controller) SessionID() string { return c.sessionID }

// Phase returns the current view phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Lesson returns the loaded lesson content, nil before LoadLesson.
func (c *Controller) Lesson() *api.Lesson {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lesson
}

// Completed reports the local completion flag. It is optimistic: a
// failed progress write does not clear it.
func (c *Controller) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// Bookmarked reports the local bookmark flag.
func (c *Controller) Bookmarked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bookmarked
}

// NoteExists reports whether a note is known to exist remotely.
func (c *Controller) NoteExists() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noteExists
}

// NoteContent returns the last known note text.
func (c *Controller) NoteContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noteContent
}

// LoadLesson fetches the lesson and best-effort prefetches prior
// progress, note, and bookmark state. Missing progress or note is
// treated as "none yet", never as an error; only absent content fails,
// with ErrLessonNotFound.
func (c *Controller) LoadLesson(ctx context.Context, slug string) error {
	lesson, err := c.deps.Content.Lesson(ctx, slug)
	if err != nil {
		if api.IsNotFound(err) {
			return &ErrLessonNotFound{Slug: slug, Err: err}
		}
		return fmt.Errorf("load lesson %s: %w", slug, err)
	}

	var completed bool
	if rec, err := c.deps.Progress.Progress(ctx, slug); err == nil && rec != nil {
		completed = rec.Completed
	}

	var noteExists bool
	var noteContent string
	if note, err := c.deps.Notes.Note(ctx, slug); err == nil && note != nil {
		noteExists = true
		noteContent = note.Content
	}

	var bookmarked bool
	if marks, err := c.deps.Bookmarks.Bookmarks(ctx); err == nil {
		for _, m := range marks {
			if m.Slug == slug {
				bookmarked = true
				break
			}
		}
	}

	c.mu.Lock()
	c.lesson = lesson
	c.completed = completed
	c.noteExists = noteExists
	c.noteContent = noteContent
	c.bookmarked = bookmarked
	c.phase = PhaseReady
	c.startTime = time.Now()
	c.mu.Unlock()

	return nil
}

// StartQuiz begins a quiz attempt over the lesson's definition. Fails
// with ErrNoQuiz for lessons without one.
func (c *Controller) StartQuiz() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lesson == nil || !c.lesson.HasQuiz() {
		return ErrNoQuiz
	}

	attempt, err := quiz.Start(*c.lesson.Quiz)
	if err != nil {
		return err
	}
	c.attempt = attempt
	c.progressWritten = false // new attempt, new completion event
	c.phase = PhaseQuizActive
	return nil
}

// SubmitAnswer records the answer for the current quiz question.
func (c *Controller) SubmitAnswer(ans quiz.Answer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt == nil {
		return quiz.ErrNoActiveQuestion
	}
	return c.attempt.Submit(ans)
}

// AdvanceQuiz moves past the answered question. Reaching the last
// question transitions the view to QuizComplete.
func (c *Controller) AdvanceQuiz() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt == nil {
		return quiz.ErrNoActiveQuestion
	}
	if err := c.attempt.Advance(); err != nil {
		return err
	}
	if c.attempt.Completed() {
		c.phase = PhaseQuizComplete
	}
	return nil
}

// CurrentQuestion returns the active quiz question.
func (c *Controller) CurrentQuestion() (quiz.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt == nil {
		return quiz.Question{}, quiz.ErrNoActiveQuestion
	}
	return c.attempt.CurrentQuestion()
}

// Attempt returns the active quiz attempt, nil when no quiz is running.
func (c *Controller) Attempt() *quiz.Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// CompleteLesson marks the lesson complete and upserts the progress
// record, with the quiz score when an attempt finished. The local flag
// is set before the write and never rolled back: a transient save
// failure must not undo the user's sense of completion. At most one
// write happens per quiz completion; repeat calls are no-ops.
func (c *Controller) CompleteLesson(ctx context.Context) error {
	c.mu.Lock()
	if c.lesson == nil {
		c.mu.Unlock()
		return fmt.Errorf("no lesson loaded")
	}
	if c.progressWritten {
		c.mu.Unlock()
		return nil
	}
	c.progressWritten = true
	c.completed = true

	up := api.ProgressUpsert{
		Slug:         c.lesson.Slug,
		Completed:    true,
		TimeSpentMin: c.readingMin,
	}
	if c.attempt != nil && c.attempt.Completed() {
		score := c.attempt.Score()
		up.QuizScore = &score
	}
	slug := c.lesson.Slug
	c.mu.Unlock()

	if err := c.deps.Progress.SaveProgress(ctx, up); err != nil {
		return &ErrProgressSaveFailed{Slug: slug, Err: err}
	}
	return nil
}

// SaveNote starts an asynchronous note save: one attempt plus up to the
// configured retries at a fixed delay. An empty note when none exists
// yet fails fast with ErrEmptyNote and makes no network call. A new
// SaveNote supersedes an in-flight one. The returned handle exposes the
// attempt count and terminal error.
func (c *Controller) SaveNote(ctx context.Context, text string) (*NoteSave, error) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	if c.lesson == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("no lesson loaded")
	}
	if trimmed == "" && !c.noteExists {
		c.mu.Unlock()
		return nil, ErrEmptyNote
	}
	slug := c.lesson.Slug
	exists := c.noteExists
	c.mu.Unlock()

	save := func(ctx context.Context) error {
		if exists {
			return c.deps.Notes.UpdateNote(ctx, slug, text)
		}
		return c.deps.Notes.CreateNote(ctx, slug, text)
	}

	handle := c.saver.start(ctx, slug, save)

	c.mu.Lock()
	c.activeSave = handle
	c.mu.Unlock()

	go c.watchNoteSave(handle, slug, text)
	return handle, nil
}

// watchNoteSave applies the cycle outcome to local state and the event
// log once the save finishes.
func (c *Controller) watchNoteSave(handle *NoteSave, slug, text string) {
	<-handle.Done()

	success := handle.Err() == nil && !handle.Aborted()
	if success {
		c.mu.Lock()
		c.noteExists = true
		c.noteContent = text
		c.mu.Unlock()
	}

	if c.deps.Events == nil {
		return
	}
	data := store.NoteSaveEventData{
		SessionID:  c.sessionID,
		LessonSlug: slug,
		Attempts:   handle.Attempts(),
		Success:    success,
		Aborted:    handle.Aborted(),
	}
	if err := handle.Err(); err != nil && !handle.Aborted() {
		data.ErrorMsg = err.Error()
	}
	if err := c.deps.Events.AppendNoteSave(context.Background(), data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log note save event: %v\n", err)
	}
}

// AbortNoteSave cancels the in-flight note save cycle, if any.
func (c *Controller) AbortNoteSave() {
	c.saver.abort()
}

// ToggleBookmark flips the bookmark flag locally, then syncs it. On
// failure the local flip is rolled back and ErrBookmarkSyncFailed is
// returned; unlike notes there is no retry, the toggle is cheap to redo.
func (c *Controller) ToggleBookmark(ctx context.Context) error {
	c.mu.Lock()
	if c.lesson == nil {
		c.mu.Unlock()
		return fmt.Errorf("no lesson loaded")
	}
	slug := c.lesson.Slug
	title := c.lesson.Title
	c.bookmarked = !c.bookmarked
	nowMarked := c.bookmarked
	c.mu.Unlock()

	var err error
	if nowMarked {
		err = c.deps.Bookmarks.AddBookmark(ctx, slug, title)
	} else {
		err = c.deps.Bookmarks.RemoveBookmark(ctx, slug)
	}
	if err != nil {
		c.mu.Lock()
		c.bookmarked = !nowMarked
		c.mu.Unlock()
		return &ErrBookmarkSyncFailed{Slug: slug, Err: err}
	}
	return nil
}

// Chat sends a tutoring message with the lesson body as context.
func (c *Controller) Chat(ctx context.Context, message string) (*premium.ChatReply, premium.Outcome, error) {
	c.mu.Lock()
	var lessonContext string
	if c.lesson != nil {
		lessonContext = c.lesson.Markdown
	}
	c.mu.Unlock()

	var reply *premium.ChatReply
	outcome, err := c.gate(ctx, premium.FeatureChat, func(ctx context.Context) error {
		var err error
		reply, err = c.deps.Gateway.Chat(ctx, message, lessonContext)
		return err
	})
	return reply, outcome, err
}

// GradeEssay requests AI grading for one essay answer.
func (c *Controller) GradeEssay(ctx context.Context, questionID, answer string) (*premium.GradeResult, premium.Outcome, error) {
	c.mu.Lock()
	var slug string
	if c.lesson != nil {
		slug = c.lesson.Slug
	}
	c.mu.Unlock()

	var result *premium.GradeResult
	outcome, err := c.gate(ctx, premium.FeatureGrading, func(ctx context.Context) error {
		var err error
		result, err = c.deps.Gateway.Grade(ctx, slug, questionID, answer)
		return err
	})
	return result, outcome, err
}

// AdaptivePath requests the personalized study plan.
func (c *Controller) AdaptivePath(ctx context.Context) (*premium.AdaptivePath, premium.Outcome, error) {
	var path *premium.AdaptivePath
	outcome, err := c.gate(ctx, premium.FeatureAdaptivePath, func(ctx context.Context) error {
		var err error
		path, err = c.deps.Gateway.AdaptivePath(ctx)
		return err
	})
	return path, outcome, err
}

// Entitlement returns the cached outcome for a feature, OutcomeGranted
// being set only after a successful call.
func (c *Controller) Entitlement(f premium.Feature) (premium.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.entitlements[f]
	return o, ok
}

// gate runs one premium call, classifies the result, and caches the
// per-feature outcome. A feature already known to need an upgrade is
// short-circuited without a network call; rate limits and transient
// failures are never cached, the user may retry immediately.
func (c *Controller) gate(ctx context.Context, f premium.Feature, call func(context.Context) error) (premium.Outcome, error) {
	c.mu.Lock()
	if c.entitlements[f] == premium.OutcomePremiumRequired {
		c.mu.Unlock()
		return premium.OutcomePremiumRequired, nil
	}
	c.mu.Unlock()

	err := call(ctx)
	outcome := premium.Classify(err)

	c.mu.Lock()
	switch outcome {
	case premium.OutcomeGranted, premium.OutcomePremiumRequired:
		c.entitlements[f] = outcome
	}
	c.mu.Unlock()

	c.recordPremium(f, outcome)

	if outcome == premium.OutcomeGranted {
		return outcome, nil
	}
	return outcome, err
}

func (c *Controller) recordPremium(f premium.Feature, outcome premium.Outcome) {
	if c.deps.Events == nil {
		return
	}
	err := c.deps.Events.AppendPremiumRequest(context.Background(), store.PremiumRequestEventData{
		SessionID: c.sessionID,
		Feature:   string(f),
		Outcome:   string(outcome),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log premium request event: %v\n", err)
	}
}

// StartReadingClock begins the reading-time counter, ticking at the
// configured granularity on its own goroutine. The clock touches only
// its own counter and is never blocked by pending network calls.
func (c *Controller) StartReadingClock(ctx context.Context) {
	c.mu.Lock()
	if c.clockStop != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.clockStop = cancel
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.cfg.ReadingTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				c.readingMin++
				c.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ReadingMinutes returns the accumulated reading time.
func (c *Controller) ReadingMinutes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readingMin
}

// Close ends the session: the reading clock stops, any in-flight note
// save is aborted, and the session outcome lands in the event log.
func (c *Controller) Close(ctx context.Context) {
	c.saver.abort()

	c.mu.Lock()
	if c.clockStop != nil {
		c.clockStop()
		c.clockStop = nil
	}
	if c.phase == PhaseDone {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseDone

	var data store.LessonEventData
	record := c.deps.Events != nil && c.lesson != nil
	if record {
		data = store.LessonEventData{
			SessionID:   c.sessionID,
			LessonSlug:  c.lesson.Slug,
			LessonTitle: c.lesson.Title,
			TimeSpentS:  c.readingMin * 60,
			Completed:   c.completed,
		}
		if c.attempt != nil {
			data.QuizTotal = c.attempt.Len()
			data.QuizCorrect = c.attempt.Score()
		}
	}
	c.mu.Unlock()

	if record {
		if err := c.deps.Events.AppendLessonEvent(ctx, data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log lesson event: %v\n", err)
		}
	}
}
