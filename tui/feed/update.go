package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/timeline"
)

// Rendered lines per card: border (2) + header (1) + two lines of content.
const itemLines = 5

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FetchStartedMsg:
		m.loading = true
		m.loadingDir = msg.Direction
		return m, m.notices.Wait()

	case FetchCompletedMsg:
		m = m.applyCompletion(msg.Completion)
		return m, m.notices.Wait()

	case RequestFailedMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) applyCompletion(c timeline.Completion) Model {
	m.loading = false
	if c.Cancelled {
		return m
	}
	if c.Err != nil {
		m.err = c.Err
		return m
	}
	m.err = nil

	anchor, anchored := m.Selected()
	if c.Result.Kind != timeline.NoOp {
		m.items = c.Result.Items
	}
	if c.ScrollToTop {
		m.cursor = 0
		m.start = 0
	} else if anchored {
		m.setCursorByID(anchor.ID)
	}

	switch {
	case c.Direction == domain.Older && len(c.Result.Added) == 0:
		m.notice = endOfTimelineNotice
	case c.Direction == domain.Newer && len(c.Result.Added) == 0:
		m.notice = upToDateNotice
	default:
		m.notice = ""
	}
	m.ensureCursorVisible()
	return m
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.notice = ""
		return m, m.request(domain.Newer)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		return m, m.maybeLoadOlder()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.start = 0

	case key.Matches(msg, m.keys.Bottom):
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
		m.ensureCursorVisible()
		return m, m.maybeLoadOlder()

	case key.Matches(msg, m.keys.Open):
		if it, ok := m.Selected(); ok {
			return m, openURL(it.Displayed().URL)
		}
	}
	return m, nil
}

// maybeLoadOlder requests the next older page once the selection sits on the
// oldest item. Reshares count as the bottom when their original is selected.
func (m Model) maybeLoadOlder() tea.Cmd {
	if m.loading || m.coord.Store().ReachedEnd() {
		return nil
	}
	it, ok := m.Selected()
	if !ok || m.cursor != len(m.items)-1 {
		return nil
	}
	if !m.coord.Store().IsOldest(it.Displayed()) {
		return nil
	}
	return m.request(domain.Older)
}

func (m *Model) setCursorByID(id domain.ID) {
	for i, it := range m.items {
		if it.ID == id {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m Model) visibleCount() int {
	if m.height <= 0 {
		return 10
	}
	// Header (~3) and status plus help (~4).
	n := (m.height - 7) / itemLines
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureCursorVisible() {
	if len(m.items) == 0 {
		m.cursor, m.start = 0, 0
		return
	}
	visible := m.visibleCount()
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+visible {
		m.start = m.cursor - visible + 1
	}
	if m.start > len(m.items)-1 {
		m.start = len(m.items) - 1
	}
	if m.start < 0 {
		m.start = 0
	}
}
