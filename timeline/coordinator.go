package timeline

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/CrestNiraj12/openfeed/app"
	"github.com/CrestNiraj12/openfeed/domain"
)

// FetchState is the coordinator's explicit request state.
type FetchState struct {
	InFlight  bool
	Direction domain.Direction // Meaningful only while InFlight.
}

// Completion reports how a fetch ended: with a merge Result, an Err, or
// Cancelled.
type Completion struct {
	Direction domain.Direction
	Result    MergeResult
	Err       *domain.FetchError
	Cancelled bool

	// ScrollToTop is set when newer items were put in front of the timeline.
	ScrollToTop bool
}

// Listener receives fetch notifications.
//
// Methods may be called from the fetch goroutine, one at a time and in the
// order the transitions happened. No coordinator lock is held while they run.
type Listener interface {
	FetchStarted(dir domain.Direction)
	FetchCompleted(c Completion)
}

// Options tune a Coordinator.
type Options struct {
	Cursor Cursor
	Logger *log.Logger // Defaults to discarding output.
}

// Coordinator gates fetches so at most one is in flight, hands results to the
// store and notifies a listener.
type Coordinator struct {
	fetcher  app.PageFetcher
	store    *Store
	listener Listener
	cursor   Cursor
	logger   *log.Logger

	mu     sync.Mutex
	state  FetchState
	seq    uint64 // Bumped per dispatched fetch; resolutions with an old seq are dropped.
	cancel context.CancelFunc

	// Notifications are queued under mu and drained by one goroutine at a
	// time, so a start is never reported after its own completion.
	pending    []notice
	delivering bool

	closed bool
	wg     sync.WaitGroup
}

// NewCoordinator creates an idle coordinator. A nil listener is allowed.
func NewCoordinator(fetcher app.PageFetcher, store *Store, listener Listener, opts Options) *Coordinator {
	if listener == nil {
		listener = nopListener{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cursor := opts.Cursor
	if cursor == (Cursor{}) {
		cursor = DefaultCursor()
	}
	return &Coordinator{
		fetcher:  fetcher,
		store:    store,
		listener: listener,
		cursor:   cursor,
		logger:   logger,
	}
}

// Store returns the timeline store the coordinator merges into.
func (c *Coordinator) Store() *Store {
	return c.store
}

// State returns the current fetch state.
func (c *Coordinator) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RequestRefresh fetches items newer than the timeline's newest item.
// It reports false when a fetch is already in flight.
func (c *Coordinator) RequestRefresh() bool {
	started, _ := c.Request(domain.Newer)
	return started
}

// RequestOlder fetches the page before the timeline's oldest item. It fails
// with domain.ErrInvalidState on an empty timeline and reports false when a
// fetch is already in flight.
func (c *Coordinator) RequestOlder() (bool, error) {
	return c.Request(domain.Older)
}

// Request starts a fetch in direction dir unless one is in flight. The fetch
// runs on its own goroutine; Request never blocks on the network.
func (c *Coordinator) Request(dir domain.Direction) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, domain.InvalidState("coordinator closed")
	}
	if c.state.InFlight {
		inflight := c.state.Direction
		c.mu.Unlock()
		c.logger.Printf("timeline: %s request dropped, %s fetch in flight", dir, inflight)
		return false, nil
	}

	directive, err := c.cursor.Next(c.store.Snapshot(), dir)
	if err != nil {
		c.mu.Unlock()
		return false, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.seq++
	seq := c.seq
	c.state = FetchState{InFlight: true, Direction: dir}
	c.cancel = cancel
	c.wg.Add(1)
	c.pending = append(c.pending, notice{started: true, dir: dir})
	c.unlockAndDeliver()

	go c.run(ctx, seq, dir, directive)
	return true, nil
}

func (c *Coordinator) run(ctx context.Context, seq uint64, dir domain.Direction, d domain.Directive) {
	defer c.wg.Done()
	items, err := c.fetcher.Fetch(ctx, d)
	c.finish(seq, dir, items, err)
}

func (c *Coordinator) finish(seq uint64, dir domain.Direction, items []domain.Item, err error) {
	c.mu.Lock()
	if seq != c.seq || !c.state.InFlight {
		c.mu.Unlock()
		c.logger.Printf("timeline: discarding stale %s result", dir)
		return
	}
	c.state = FetchState{}
	c.cancel()
	c.cancel = nil

	done := Completion{Direction: dir}
	switch {
	case errors.Is(err, context.Canceled):
		done.Cancelled = true
	case err != nil:
		done.Err = domain.AsFetchError("fetch "+dir.String(), err)
		c.logger.Printf("timeline: %s fetch failed: %v", dir, done.Err)
	default:
		done.Result = c.store.Merge(items, dir)
		done.ScrollToTop = done.Result.Kind == Prepended
		c.checkResult(done.Result)
	}
	c.pending = append(c.pending, notice{dir: dir, done: done})
	c.unlockAndDeliver()
}

func (c *Coordinator) checkResult(res MergeResult) {
	if err := CheckOrder(res.Items); err != nil {
		c.logger.Printf("timeline: %s merge produced an unordered timeline: %v", res.Kind, err)
	}
	switch {
	case res.Direction == domain.Older && res.Kind == Prepended:
		c.logger.Printf("timeline: older page did not echo the boundary item, prepended %d items", len(res.Added))
	case res.Direction == domain.Newer && res.Kind == Appended:
		c.logger.Printf("timeline: newer page started with the oldest item, appended %d items", len(res.Added))
	}
}

// Cancel aborts the in-flight fetch, if any. The coordinator returns to idle
// at once and reports a cancelled completion; the fetch's late result is
// discarded.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.cancelLocked()
}

// Reset cancels any in-flight fetch and replaces the timeline, e.g. when the
// session switches accounts.
func (c *Coordinator) Reset(items []domain.Item) {
	c.mu.Lock()
	c.store.Replace(items)
	c.cancelLocked()
}

// cancelLocked must be called with mu held and releases it.
func (c *Coordinator) cancelLocked() {
	if !c.state.InFlight {
		c.mu.Unlock()
		return
	}
	dir := c.state.Direction
	c.state = FetchState{}
	c.seq++
	c.cancel()
	c.cancel = nil
	c.pending = append(c.pending, notice{dir: dir, done: Completion{Direction: dir, Cancelled: true}})
	c.unlockAndDeliver()
}

// unlockAndDeliver must be called with mu held and releases it. The first
// caller drains the queue; callers arriving meanwhile only enqueue.
func (c *Coordinator) unlockAndDeliver() {
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true
	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()
		for _, n := range batch {
			if n.started {
				c.listener.FetchStarted(n.dir)
			} else {
				c.listener.FetchCompleted(n.done)
			}
		}
		c.mu.Lock()
	}
	c.delivering = false
	c.mu.Unlock()
}

// Close cancels any in-flight fetch and waits for its goroutine to exit.
// Later requests fail with ErrInvalidState. Close must not be called from a
// Listener method: it waits on the goroutine that is delivering to it.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelLocked()
	c.wg.Wait()
}

// Wait blocks until no fetch goroutine is running.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

type notice struct {
	started bool
	dir     domain.Direction
	done    Completion
}

type nopListener struct{}

func (nopListener) FetchStarted(domain.Direction) {}
func (nopListener) FetchCompleted(Completion)     {}
