// Package germination provides the TUI view for trays awaiting transplant.
package germination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/tui/components"
	"github.com/greenhouse/greenhouse/internal/util"
)

// Styles holds the colors used by the tray view.
type Styles struct {
	Label lipgloss.Style
	Value lipgloss.Style
	Ready lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles returns the green terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#3E9A3A")),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("#7CDB6A")),
		Ready: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#2A5A28")),
	}
}

// trayColumns are every column the view can show.
var trayColumns = []components.Column{
	{Title: "#", Width: 3, Align: lipgloss.Right},
	{Title: "Tray", Width: 8},
	{Title: "Variety", Width: 20},
	{Title: "Plants", Width: 6, Align: lipgloss.Right},
	{Title: "Seeded", Width: 6, Align: lipgloss.Right},
	{Title: "Age", Width: 4, Align: lipgloss.Right},
	{Title: "Status", Width: 10},
}

// columnSets are indexes into trayColumns, widest first.
var columnSets = [][]int{
	{0, 1, 2, 3, 4, 5, 6},
	{0, 2, 3, 6},
	{2, 3},
}

// TrayView displays germinating trays, oldest first.
type TrayView struct {
	table   *components.Table
	trays   []*models.GerminationTray
	cells   [][]string // every column, per tray
	visible []int
	day     int
	styles  Styles
}

// NewTrayView creates a new tray view showing every column.
func NewTrayView() *TrayView {
	table := components.NewTable(trayColumns)
	table.SetVisibleRows(8)
	table.Focus(true)

	return &TrayView{
		table:   table,
		visible: columnSets[0],
		styles:  DefaultStyles(),
	}
}

// SetWidth picks the widest column set that fits in width. A width of zero
// or less shows every column.
func (v *TrayView) SetWidth(width int) {
	set := columnSets[0]
	if width > 0 {
		set = columnSets[len(columnSets)-1]
		for _, candidate := range columnSets {
			if components.Width(pick(trayColumns, candidate)) <= width {
				set = candidate
				break
			}
		}
	}

	v.visible = set
	v.table.SetColumns(pick(trayColumns, set))
	v.applyRows()
}

func (v *TrayView) applyRows() {
	rows := make([][]string, len(v.cells))
	for i, cells := range v.cells {
		rows[i] = pick(cells, v.visible)
	}
	v.table.SetRows(rows)
}

func pick[T any](all []T, indexes []int) []T {
	out := make([]T, len(indexes))
	for i, idx := range indexes {
		out[i] = all[idx]
	}
	return out
}

// SetStyles replaces the view styles.
func (v *TrayView) SetStyles(s Styles) {
	v.styles = s
}

// SetTableStyles replaces the styles of the underlying table.
func (v *TrayView) SetTableStyles(header, row, rowAlt, selected, border lipgloss.Style) {
	v.table.SetStyles(header, row, rowAlt, selected, border)
}

// SetVisibleRows sets how many trays are listed before scrolling.
func (v *TrayView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// SetState loads the trays from a state snapshot taken on the given day.
// The selection follows the newest tray, the next transplant source.
func (v *TrayView) SetState(g models.GerminationState, day int) {
	v.trays = g.Trays
	v.day = day

	v.cells = make([][]string, len(v.trays))
	for i, t := range v.trays {
		v.cells[i] = []string{
			strconv.Itoa(i + 1),
			util.ShortID(t.ID),
			t.Name(),
			strconv.Itoa(t.Plants),
			strconv.Itoa(t.SeededDay),
			strconv.Itoa(v.age(t)),
			v.status(t),
		}
	}

	v.applyRows()
	v.table.GoToBottom()
}

// Count returns the number of trays shown.
func (v *TrayView) Count() int {
	return v.table.RowCount()
}

// Plants returns the number of seedlings across all trays.
func (v *TrayView) Plants() int {
	total := 0
	for _, t := range v.trays {
		total += t.Plants
	}
	return total
}

// Next returns the selected tray, which the next transplant draws from, or nil.
func (v *TrayView) Next() *models.GerminationTray {
	if v.table.Empty() {
		return nil
	}
	return v.trays[v.table.Selected()]
}

func (v *TrayView) age(t *models.GerminationTray) int {
	return max(v.day-t.SeededDay, 0)
}

// status reports whether the variety's transplant day has been reached.
func (v *TrayView) status(t *models.GerminationTray) string {
	if t.Plants < t.Capacity {
		return "partial"
	}
	if t.Variety == nil {
		return "growing"
	}
	day, ok := t.Variety.ActionDay(models.ActionTransplant)
	if ok && v.age(t) >= day {
		return "ready"
	}
	return "growing"
}

// Render renders the tray view.
func (v *TrayView) Render(width int) string {
	if v.table.Empty() {
		return v.styles.Muted.Render("No trays germinating. Press n to seed one.")
	}

	var b strings.Builder

	b.WriteString(v.styles.Label.Render("Trays: "))
	b.WriteString(v.styles.Value.Render(strconv.Itoa(v.Count())))
	b.WriteString(v.styles.Label.Render("  Seedlings: "))
	b.WriteString(v.styles.Value.Render(strconv.Itoa(v.Plants())))
	b.WriteString("\n\n")

	b.WriteString(v.table.Render())

	if next := v.Next(); next != nil {
		b.WriteString("\n\n")
		line := fmt.Sprintf("Next transplant: %s (%d plants)", next.Name(), next.Plants)
		if width > 0 && lipgloss.Width(line) > width {
			line = fmt.Sprintf("Next: %s", next.Name())
		}
		b.WriteString(v.styles.Ready.Render(line))
	}

	return b.String()
}
