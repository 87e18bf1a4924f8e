package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/theme"
)

// Layout manages the terminal frame dimensions: a one-line header with
// the unread badge, the content area, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top bar: application title on the left, the
// unread-notification badge on the right. Counts above nine collapse to
// "9+".
func (l Layout) RenderHeader(title string, unread int) string {
	titleRendered := theme.HeaderStyle.Render(title)

	badge := ""
	if unread > 0 {
		label := fmt.Sprintf("%d", unread)
		if unread > 9 {
			label = "9+"
		}
		badge = theme.UnreadStyle.Render("● " + label)
	}

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(badge)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		badge,
	)
}

// RenderStatusBar renders the bottom status bar. When notice is
// non-empty it replaces the keyboard hints, styled as an error when
// isError is set.
func (l Layout) RenderStatusBar(hints string, notice string, isError bool) string {
	text := hints
	if notice != "" {
		if isError {
			text = theme.ErrorStyle.Render(notice)
		} else {
			text = notice
		}
	}

	rendered := theme.StatusBarStyle.Render(text)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
