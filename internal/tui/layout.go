package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LayoutBreakpoint defines terminal width thresholds for responsive layout.
type LayoutBreakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow LayoutBreakpoint = 60
	// BreakpointMedium is for terminals between 60-100 columns.
	BreakpointMedium LayoutBreakpoint = 100
	// BreakpointWide is for terminals over 100 columns.
	BreakpointWide LayoutBreakpoint = 140
)

// GetBreakpoint returns the current layout breakpoint for the given width.
func GetBreakpoint(width int) LayoutBreakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// Panel renders a bordered panel with the title set into the top border.
func (t *Theme) Panel(title, content string, width int) string {
	width = max(width, 8)
	border := lipgloss.RoundedBorder()

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(t.SecondaryColor).
		Width(width-2). // -2 for border chars
		Padding(0, 1).
		Render(content)

	titleRendered := ""
	if title != "" {
		titleRendered = t.Accent.Bold(true).Render(" " + Truncate(title, width-6) + " ")
	}
	fill := max(width-3-lipgloss.Width(titleRendered), 0)

	edge := lipgloss.NewStyle().Foreground(t.SecondaryColor)
	top := edge.Render(border.TopLeft+border.Top) +
		titleRendered +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	return top + "\n" + body
}

// SideBySide renders two strings side by side, collapsing to vertical on narrow terminals.
func SideBySide(left, right string, totalWidth, gap int) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	if leftWidth+rightWidth+gap > totalWidth {
		return left + "\n\n" + right
	}

	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	maxLines := max(len(leftLines), len(rightLines))

	var b strings.Builder
	for i := 0; i < maxLines; i++ {
		l := ""
		if i < len(leftLines) {
			l = leftLines[i]
		}
		r := ""
		if i < len(rightLines) {
			r = rightLines[i]
		}

		b.WriteString(PadRight(l, leftWidth+gap))
		b.WriteString(r)
		if i < maxLines-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ProgressBar renders a single-color text progress bar for the day timer.
func (t *Theme) ProgressBar(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)

	barWidth := max(width-2, 4) // for [ and ]
	filled := int(ratio * float64(barWidth))
	empty := barWidth - filled

	return t.Muted.Render("[") +
		t.Primary.Render(strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", empty)+"]")
}

// Truncate shortens a string to fit within maxWidth, adding ellipsis if needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxWidth-1]) + "…"
}

// PadRight pads a string to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}
