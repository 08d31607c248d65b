package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/app"
	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/timeline"
)

type page struct {
	items []domain.Item
	err   error
}

// scriptedFetcher answers fetches with queued pages in order.
type scriptedFetcher struct {
	mu    sync.Mutex
	pages []page
	calls []domain.Directive
}

func (f *scriptedFetcher) Fetch(_ context.Context, d domain.Directive) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, d)
	if len(f.pages) == 0 {
		return nil, nil
	}
	p := f.pages[0]
	f.pages = f.pages[1:]
	return p.items, p.err
}

func (f *scriptedFetcher) Calls() []domain.Directive {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Directive(nil), f.calls...)
}

var _ app.PageFetcher = (*scriptedFetcher)(nil)

func makeItems(ids ...string) []domain.Item {
	base := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	out := make([]domain.Item, len(ids))
	for i, id := range ids {
		out[i] = domain.Item{
			ID:        domain.ID(id),
			Author:    "Author " + id,
			Username:  "user" + id,
			Content:   "hello from " + id,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
			URL:       "https://example.social/@user" + id + "/" + id,
		}
	}
	return out
}

func itemIDs(in []domain.Item) []string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = string(it.ID)
	}
	return out
}

func newTestModel(t *testing.T, initial []domain.Item, pages ...page) (Model, *scriptedFetcher) {
	t.Helper()
	f := &scriptedFetcher{pages: pages}
	notices := NewNotices(8)
	coord := timeline.NewCoordinator(f, timeline.NewStore(initial), notices, timeline.Options{})
	t.Cleanup(func() {
		notices.Close()
		coord.Close()
	})
	return New(coord, notices, "home"), f
}

func nextNotice(t *testing.T, n *Notices) tea.Msg {
	t.Helper()
	got := make(chan tea.Msg, 1)
	go func() { got <- n.Wait()() }()
	select {
	case msg := <-got:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notification")
		return nil
	}
}

// drive runs cmd and feeds notifications to the model until a fetch completes.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a request command")
	}
	if msg := cmd(); msg != nil {
		m, _ = m.Update(msg)
		return m
	}
	for {
		msg := nextNotice(t, m.notices)
		m, _ = m.Update(msg)
		if _, ok := msg.(FetchCompletedMsg); ok {
			return m
		}
	}
}

func press(m Model, r rune) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}
