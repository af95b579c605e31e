// Package search debounces free-text search input. Keystrokes echo into the
// visible text immediately; the expensive commit (a refetch through the
// collection controller) fires only after the input has been quiet for the
// debounce window. Intermediate values that never survive a full window are
// never committed.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/dspavlov/docshelf/internal/common"
)

// CommitFunc receives the settled search term.
type CommitFunc func(ctx context.Context, term string)

// Input is a debounced text input bound to one commit target.
type Input struct {
	mu        sync.Mutex
	text      string
	committed string
	gen       uint64
	debounced func(func())
	commit    CommitFunc
}

// NewInput builds an Input committing through fn after window of quiescence.
// A zero window falls back to the standard debounce interval.
func NewInput(fn CommitFunc, window time.Duration) *Input {
	if window <= 0 {
		window = common.SearchDebounce
	}
	return &Input{
		debounced: debounce.New(window),
		commit:    fn,
	}
}

// SetText records a keystroke. The visible text updates synchronously; the
// commit is rescheduled to fire only if no further keystroke arrives within
// the window.
func (in *Input) SetText(ctx context.Context, text string) {
	in.mu.Lock()
	in.text = text
	in.gen++
	gen := in.gen
	in.mu.Unlock()

	in.debounced(func() {
		in.commitIfCurrent(ctx, gen)
	})
}

// Flush commits the current text immediately, bypassing the window. The
// pending timer, if any, becomes a no-op.
func (in *Input) Flush(ctx context.Context) {
	in.mu.Lock()
	in.gen++
	gen := in.gen
	in.mu.Unlock()
	in.commitIfCurrent(ctx, gen)
}

// Cancel drops any pending commit and restores the visible text to the last
// committed term.
func (in *Input) Cancel() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.gen++
	in.text = in.committed
}

// Text returns the visible (possibly uncommitted) text.
func (in *Input) Text() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.text
}

// Committed returns the last term actually committed.
func (in *Input) Committed() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.committed
}

func (in *Input) commitIfCurrent(ctx context.Context, gen uint64) {
	in.mu.Lock()
	if gen != in.gen {
		in.mu.Unlock()
		return
	}
	term := in.text
	if term == in.committed {
		in.mu.Unlock()
		return
	}
	in.committed = term
	in.mu.Unlock()

	in.commit(ctx, term)
}
