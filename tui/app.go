package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/timeline"
	"github.com/CrestNiraj12/openfeed/tui/common"
	"github.com/CrestNiraj12/openfeed/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Coordinator *timeline.Coordinator
	Notices     *feed.Notices // Must be the coordinator's listener
	Source      string        // Label for the timeline, e.g. "home" or "#golang"
}

// App is the root Bubble Tea model.
type App struct {
	feed feed.Model
	keys common.KeyMap
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		feed: feed.New(deps.Coordinator, deps.Notices, deps.Source),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global keys and routes everything else to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

// View renders the feed.
func (a App) View() string {
	return a.feed.View()
}

// Feed returns the feed model, mainly for inspection after the program exits.
func (a App) Feed() feed.Model {
	return a.feed
}
