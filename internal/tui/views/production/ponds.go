// Package production provides the TUI view for ponds and their rafts.
package production

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/greenhouse/greenhouse/internal/models"
)

// cellWidth is the rendered width of one raft cell plus its separator.
const cellWidth = 5

// Styles holds the colors used by the pond view.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Empty    lipgloss.Style
	Occupied lipgloss.Style
	Full     lipgloss.Style
	Muted    lipgloss.Style
	Disabled lipgloss.Style
}

// DefaultStyles returns the green terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B8F5A8")).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#7CDB6A")).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3E9A3A")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2A5A28")),
		Occupied: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
		Full:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7CDB6A")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2A5A28")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Strikethrough(true),
	}
}

// PondView displays the raft grid of every pond.
type PondView struct {
	ponds    []*models.Pond
	selected int
	maxRafts int
	canPlant bool
	styles   Styles
}

// NewPondView creates a pond view drawing at most maxRafts rafts per pond.
func NewPondView(maxRafts int) *PondView {
	return &PondView{
		maxRafts: max(maxRafts, 1),
		styles:   DefaultStyles(),
	}
}

// SetStyles replaces the view styles.
func (v *PondView) SetStyles(s Styles) {
	v.styles = s
}

// SetPonds loads the ponds from a state snapshot.
func (v *PondView) SetPonds(ponds []*models.Pond) {
	v.ponds = ponds
	v.selected = min(v.selected, max(len(ponds)-1, 0))
}

// SetTransplantEnabled sets whether transplant controls are drawn as available.
func (v *PondView) SetTransplantEnabled(enabled bool) {
	v.canPlant = enabled
}

// Selected returns the index of the selected pond.
func (v *PondView) Selected() int {
	return v.selected
}

// Select selects the pond at index i if it exists.
func (v *PondView) Select(i int) {
	if i >= 0 && i < len(v.ponds) {
		v.selected = i
	}
}

// MoveUp selects the previous pond.
func (v *PondView) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown selects the next pond.
func (v *PondView) MoveDown() {
	if v.selected < len(v.ponds)-1 {
		v.selected++
	}
}

// Render renders every pond, wrapping raft cells to width.
func (v *PondView) Render(width int) string {
	if len(v.ponds) == 0 {
		return v.styles.Muted.Render("No ponds.")
	}

	var b strings.Builder
	for i, p := range v.ponds {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderPond(i, p, width))
	}
	return b.String()
}

func (v *PondView) renderPond(index int, p *models.Pond, width int) string {
	var b strings.Builder

	marker := "  "
	title := v.styles.Title.Render(p.Name)
	if index == v.selected {
		marker = "▶ "
		title = v.styles.Selected.Render(" " + p.Name + " ")
	}
	b.WriteString(marker + title)
	b.WriteString(v.styles.Label.Render(fmt.Sprintf("  rafts: %d  plants: %d  ", len(p.Rafts), p.Plants())))
	b.WriteString(v.transplantHint(index))
	b.WriteString("\n")

	if len(p.Rafts) == 0 {
		b.WriteString("  " + v.styles.Muted.Render("no rafts launched"))
		return b.String()
	}

	b.WriteString(v.renderGrid(p.Rafts, width))
	return b.String()
}

func (v *PondView) transplantHint(index int) string {
	hint := fmt.Sprintf("[%d] transplant", index+1)
	if !v.canPlant {
		return v.styles.Disabled.Render(hint)
	}
	return v.styles.Label.Render(hint)
}

// renderGrid lays raft cells out newest first, summarizing rafts beyond maxRafts.
func (v *PondView) renderGrid(rafts []*models.ProductionRaft, width int) string {
	perLine := max((width-2)/cellWidth, 1)

	shown := rafts
	if len(shown) > v.maxRafts {
		shown = shown[:v.maxRafts]
	}

	var b strings.Builder
	for i, r := range shown {
		if i%perLine == 0 {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(v.renderCell(r))
	}

	if hidden := len(rafts) - len(shown); hidden > 0 {
		b.WriteString("\n  ")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("+%d older", hidden)))
	}
	return b.String()
}

func (v *PondView) renderCell(r *models.ProductionRaft) string {
	cell := fmt.Sprintf("[%2d]", r.Plants)
	switch {
	case r.IsEmpty():
		return v.styles.Empty.Render(cell)
	case r.IsFull():
		return v.styles.Full.Render(cell)
	default:
		return v.styles.Occupied.Render(cell)
	}
}
