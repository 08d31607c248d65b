package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/timeline"
	"github.com/CrestNiraj12/openfeed/tui/common"
)

const (
	endOfTimelineNotice = "End of timeline"
	upToDateNotice      = "Up to date"
)

// RequestFailedMsg is sent when the coordinator refuses a request, e.g. an
// older page on an empty timeline.
type RequestFailedMsg struct {
	Direction domain.Direction
	Err       error
}

// Model holds the state for the feed (timeline) view.
type Model struct {
	coord   *timeline.Coordinator
	notices *Notices
	source  string

	items  []domain.Item // Last published timeline, newest first
	cursor int
	start  int // First visible item
	width  int
	height int

	loading    bool
	loadingDir domain.Direction
	err        error
	notice     string

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates a feed model over coord. notices must be the listener the
// coordinator was built with.
func New(coord *timeline.Coordinator, notices *Notices, source string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = common.SpinnerStyle

	return Model{
		coord:   coord,
		notices: notices,
		source:  source,
		items:   coord.Store().Snapshot(),
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init starts listening for notifications and refreshes the timeline.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.notices.Wait(),
		m.spinner.Tick,
		m.request(domain.Newer),
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// request asks the coordinator for a page. Progress arrives through Notices.
func (m Model) request(dir domain.Direction) tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		if _, err := coord.Request(dir); err != nil {
			return RequestFailedMsg{Direction: dir, Err: err}
		}
		return nil
	}
}

// Items returns the displayed timeline.
func (m Model) Items() []domain.Item {
	return m.items
}

// Cursor returns the selected index.
func (m Model) Cursor() int {
	return m.cursor
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the last fetch or request error.
func (m Model) Err() error {
	return m.err
}

// Notice returns the current informational notice.
func (m Model) Notice() string {
	return m.notice
}

// Selected returns the item under the cursor.
func (m Model) Selected() (domain.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Item{}, false
	}
	return m.items[m.cursor], true
}
