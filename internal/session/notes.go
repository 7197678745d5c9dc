package session

import (
	"context"
	"sync"
	"time"
)

// NoteSave is the handle for one asynchronous note save cycle. Done()
// closes when the cycle finishes, whether it succeeded, exhausted its
// retries, or was aborted by supersede or navigation.
type NoteSave struct {
	done chan struct{}

	mu       sync.Mutex
	attempts int
	err      error
	aborted  bool
}

// Done returns a channel closed when the save cycle finishes.
func (s *NoteSave) Done() <-chan struct{} { return s.done }

// Attempts returns how many store calls were made so far.
func (s *NoteSave) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Err returns the terminal error of the cycle: nil on success, an
// ErrNoteSaveFailed after exhausted retries, or the context error when
// aborted. Only meaningful after Done() closes.
func (s *NoteSave) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Aborted reports whether the cycle was cancelled before finishing.
func (s *NoteSave) Aborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

func (s *NoteSave) recordAttempt() {
	s.mu.Lock()
	s.attempts++
	s.mu.Unlock()
}

func (s *NoteSave) finish(err error, aborted bool) {
	s.mu.Lock()
	s.err = err
	s.aborted = aborted
	s.mu.Unlock()
	close(s.done)
}

// noteSaver runs at most one save cycle at a time. Starting a new cycle
// cancels the previous one so a stale note can never land after a newer
// one (out-of-order writes).
type noteSaver struct {
	retries int
	delay   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// start launches a save cycle: one initial attempt plus up to retries
// more, with a fixed delay between attempts. The returned handle
// observes progress; the cycle runs until success, exhaustion, or
// cancellation.
func (ns *noteSaver) start(parent context.Context, slug string, save func(context.Context) error) *NoteSave {
	ctx, cancel := context.WithCancel(parent)

	ns.mu.Lock()
	if ns.cancel != nil {
		ns.cancel()
	}
	ns.cancel = cancel
	ns.mu.Unlock()

	handle := &NoteSave{done: make(chan struct{})}

	go func() {
		var lastErr error
		for attempt := 0; attempt <= ns.retries; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(ns.delay):
				case <-ctx.Done():
					handle.finish(ctx.Err(), true)
					return
				}
			}

			if ctx.Err() != nil {
				handle.finish(ctx.Err(), true)
				return
			}

			handle.recordAttempt()
			lastErr = save(ctx)
			if lastErr == nil {
				handle.finish(nil, false)
				return
			}
			if ctx.Err() != nil {
				handle.finish(ctx.Err(), true)
				return
			}
		}

		handle.finish(&ErrNoteSaveFailed{
			Slug:     slug,
			Attempts: handle.Attempts(),
			Err:      lastErr,
		}, false)
	}()

	return handle
}

// abort cancels the in-flight cycle, if any. Used on navigate-away:
// abandoning a lesson stops further retries rather than saving silently
// in the background.
func (ns *noteSaver) abort() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if ns.cancel != nil {
		ns.cancel()
		ns.cancel = nil
	}
}
