package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/openfeed/domain"
)

func truncateToTwoLines(text string, width int) string {
	if width < 12 {
		width = 12
	}
	// Render with width to handle both explicit newlines and wrapping.
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= 2 {
		return wrapped
	}
	return strings.TrimRight(lines[0], " ") + "\n" + ansi.Truncate(strings.TrimRight(lines[1], " "), width-3, "") + "..."
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Truncate(ln, width, "…")
	}
	return strings.Join(lines, "\n")
}

func displayName(it domain.Item) string {
	if name := strings.TrimSpace(it.Author); name != "" {
		return name
	}
	if it.Username != "" {
		return it.Username
	}
	return "unknown"
}
