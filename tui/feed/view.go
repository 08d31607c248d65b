package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("openfeed")
	source := common.SourceStyle.Render(m.source)
	count := common.TaglineStyle.Render(fmt.Sprintf("%d items", len(m.items)))
	b.WriteString(title + source + count + "\n\n")

	switch {
	case len(m.items) == 0 && m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading timeline...\n", m.spinner.View()))
	case len(m.items) == 0 && m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  " + errorText(m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.items) == 0:
		b.WriteString("  Nothing here yet. Press r to refresh.\n")
	default:
		b.WriteString(m.renderList())
		b.WriteString("\n")
		if line := m.statusLine(); line != "" {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderList() string {
	cardWidth, bodyWidth := m.cardWidths()
	end := min(m.start+m.visibleCount(), len(m.items))

	cards := make([]string, 0, end-m.start)
	for i := m.start; i < end; i++ {
		cards = append(cards, renderItem(m.items[i], i == m.cursor, cardWidth, bodyWidth))
	}
	return strings.Join(cards, "\n")
}

func renderItem(it domain.Item, selected bool, cardWidth, bodyWidth int) string {
	shown := it.Displayed()

	lines := make([]string, 0, 4)
	if it.IsReshare() {
		lines = append(lines, common.ReshareStyle.Render("↻ "+displayName(it)+" reshared"))
	}
	header := common.AuthorStyle.Render(displayName(shown))
	if shown.Username != "" {
		header += " " + common.UsernameStyle.Render("@"+shown.Username)
	}
	if !shown.CreatedAt.IsZero() {
		header += "  " + common.TimestampStyle.Render(shown.CreatedAt.Local().Format("Jan 02 15:04"))
	}
	lines = append(lines, clampLinesToWidth(header, bodyWidth))
	lines = append(lines, common.ContentStyle.Render(truncateToTwoLines(shown.Content, bodyWidth)))

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) cardWidths() (cardWidth int, bodyWidth int) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	cardWidth = max(width-2, 16)
	bodyWidth = max(cardWidth-4, 12)
	return cardWidth, bodyWidth
}

func (m Model) statusLine() string {
	switch {
	case m.loading:
		return fmt.Sprintf("  %s Loading %s items...", m.spinner.View(), m.loadingDir)
	case m.err != nil:
		return common.ErrorStyle.Render("  " + errorText(m.err))
	case m.notice != "":
		return common.NoticeStyle.Render("  " + m.notice)
	}
	return ""
}

func (m Model) helpView() string {
	bindings := m.keys.HelpBindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return common.StatusBarStyle.Render("  " + strings.Join(parts, " • "))
}

func errorText(err error) string {
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return "Error: " + err.Error()
	}
	switch fe.Kind {
	case domain.KindAuth:
		return "Not authorized. Check your access token."
	case domain.KindRateLimited:
		if fe.RetryAfter > 0 {
			return fmt.Sprintf("Rate limited. Try again in %s.", fe.RetryAfter.Round(time.Second))
		}
		return "Rate limited. Try again later."
	case domain.KindTimeout:
		return "Request timed out. Press r to retry."
	case domain.KindNetwork:
		if fe.Err != nil {
			return "Network error: " + fe.Err.Error()
		}
		return "Network error."
	default:
		return "Error: " + fe.Error()
	}
}
