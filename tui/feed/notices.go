package feed

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/timeline"
)

// FetchStartedMsg is sent when the coordinator dispatches a fetch.
type FetchStartedMsg struct {
	Direction domain.Direction
}

// FetchCompletedMsg is sent when a fetch resolves, fails or is cancelled.
type FetchCompletedMsg struct {
	Completion timeline.Completion
}

// Notices is a timeline.Listener that forwards coordinator notifications to
// the Bubble Tea program as messages.
type Notices struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

// NewNotices creates a listener with room for buffer pending messages.
func NewNotices(buffer int) *Notices {
	if buffer < 1 {
		buffer = 1
	}
	return &Notices{
		ch:   make(chan tea.Msg, buffer),
		done: make(chan struct{}),
	}
}

func (n *Notices) FetchStarted(dir domain.Direction) {
	n.send(FetchStartedMsg{Direction: dir})
}

func (n *Notices) FetchCompleted(c timeline.Completion) {
	n.send(FetchCompletedMsg{Completion: c})
}

// send blocks until the program reads the message or Close is called.
func (n *Notices) send(msg tea.Msg) {
	select {
	case n.ch <- msg:
	case <-n.done:
	}
}

// Wait returns a command that delivers the next notification. The model
// re-arms it after every notification it handles.
func (n *Notices) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-n.ch:
			return msg
		case <-n.done:
			return nil
		}
	}
}

// Close releases any sender still blocked on the program. Call it before
// closing the coordinator once the program has exited.
func (n *Notices) Close() {
	n.once.Do(func() { close(n.done) })
}
