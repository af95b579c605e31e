package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitSpy struct {
	mu    sync.Mutex
	terms []string
}

func (s *commitSpy) commit(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, term)
}

func (s *commitSpy) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

const window = 30 * time.Millisecond

func TestRapidTypingCommitsOnlyFinalTerm(t *testing.T) {
	spy := &commitSpy{}
	in := NewInput(spy.commit, window)
	ctx := context.Background()

	for _, s := range []string{"c", "co", "con", "cont", "contract"} {
		in.SetText(ctx, s)
		time.Sleep(window / 5) // well inside the window
	}
	assert.Equal(t, "contract", in.Text(), "text echoes synchronously")
	assert.Empty(t, spy.all(), "nothing committed while typing continues")

	require.Eventually(t, func() bool { return len(spy.all()) == 1 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, []string{"contract"}, spy.all(), "intermediate values never commit")
	assert.Equal(t, "contract", in.Committed())
}

func TestQuiescenceBetweenBurstsCommitsEach(t *testing.T) {
	spy := &commitSpy{}
	in := NewInput(spy.commit, window)
	ctx := context.Background()

	in.SetText(ctx, "alpha")
	require.Eventually(t, func() bool { return len(spy.all()) == 1 }, 5*time.Second, time.Millisecond)

	in.SetText(ctx, "beta")
	require.Eventually(t, func() bool { return len(spy.all()) == 2 }, 5*time.Second, time.Millisecond)

	assert.Equal(t, []string{"alpha", "beta"}, spy.all())
}

func TestFlushCommitsImmediately(t *testing.T) {
	spy := &commitSpy{}
	in := NewInput(spy.commit, time.Hour) // the timer alone would never fire
	ctx := context.Background()

	in.SetText(ctx, "urgent")
	in.Flush(ctx)

	assert.Equal(t, []string{"urgent"}, spy.all())
	assert.Equal(t, "urgent", in.Committed())
}

func TestCancelDropsPendingCommit(t *testing.T) {
	spy := &commitSpy{}
	in := NewInput(spy.commit, window)
	ctx := context.Background()

	in.SetText(ctx, "abandoned")
	in.Cancel()

	time.Sleep(3 * window)
	assert.Empty(t, spy.all())
	assert.Equal(t, "", in.Text(), "text reverts to the committed term")
}

func TestUnchangedTermDoesNotRecommit(t *testing.T) {
	spy := &commitSpy{}
	in := NewInput(spy.commit, window)
	ctx := context.Background()

	in.SetText(ctx, "same")
	in.Flush(ctx)
	in.SetText(ctx, "same")
	in.Flush(ctx)

	assert.Equal(t, []string{"same"}, spy.all())
}
