package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-maintenance/internal/theme"
)

// Layout holds the terminal dimensions of a full-screen view.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentHeight returns the rows left between the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-2, 0)
}

// RenderHeader renders a full-width bar with title on the left and info on
// the right.
func (l Layout) RenderHeader(title, info string) string {
	return l.bar(theme.HeaderStyle, title, info)
}

// RenderStatusBar renders the bottom bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return l.bar(theme.StatusBarStyle, hints, "")
}

func (l Layout) bar(style lipgloss.Style, left, right string) string {
	lhs := style.Render(left)
	rhs := ""
	if right != "" {
		rhs = style.Render(right)
	}
	gap := max(l.Width-lipgloss.Width(lhs)-lipgloss.Width(rhs), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, lhs, filler, rhs)
}

// RenderWithFrame stacks the header, content and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
