package timeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/openfeed/domain"
)

const (
	time2s = 2 * time.Second
	tick   = 5 * time.Millisecond
)

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func items(ids ...string) []domain.Item {
	out := make([]domain.Item, len(ids))
	for i, id := range ids {
		out[i] = domain.Item{ID: domain.ID(id), Author: "author " + id}
	}
	return out
}

func ids(in []domain.Item) []string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = string(it.ID)
	}
	return out
}

type fetchReply struct {
	items []domain.Item
	err   error
}

// blockingFetcher records directives and blocks each fetch until a reply is
// pushed or the context is cancelled.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   []domain.Directive
	entered chan domain.Directive
	replies chan fetchReply
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		entered: make(chan domain.Directive, 8),
		replies: make(chan fetchReply, 8),
	}
}

func (f *blockingFetcher) Fetch(ctx context.Context, d domain.Directive) ([]domain.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	f.mu.Unlock()
	f.entered <- d
	select {
	case r := <-f.replies:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *blockingFetcher) Calls() []domain.Directive {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Directive(nil), f.calls...)
}

func (f *blockingFetcher) awaitCall(t *testing.T) domain.Directive {
	t.Helper()
	select {
	case d := <-f.entered:
		return d
	case <-time.After(2 * time.Second):
		t.Fatalf("fetcher was not called")
		return domain.Directive{}
	}
}

type event struct {
	started   bool
	direction domain.Direction
	done      Completion
}

type recordingListener struct {
	events chan event
}

func newRecordingListener() *recordingListener {
	return &recordingListener{events: make(chan event, 16)}
}

func (l *recordingListener) FetchStarted(dir domain.Direction) {
	l.events <- event{started: true, direction: dir}
}

func (l *recordingListener) FetchCompleted(c Completion) {
	l.events <- event{direction: c.Direction, done: c}
}

func (l *recordingListener) next(t *testing.T) event {
	t.Helper()
	select {
	case ev := <-l.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification received")
		return event{}
	}
}

func (l *recordingListener) completed(t *testing.T) Completion {
	t.Helper()
	ev := l.next(t)
	require.False(t, ev.started, "expected a completion, got a start")
	return ev.done
}

func (l *recordingListener) requireQuiet(t *testing.T) {
	t.Helper()
	select {
	case ev := <-l.events:
		t.Fatalf("unexpected notification: %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}
