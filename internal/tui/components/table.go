// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a simple scrolling table component.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool

	// Styles
	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	rowAltStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:       columns,
		rows:          [][]string{},
		visibleRows:   10,
		headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B8F5A8")),
		rowStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7CDB6A")),
		rowAltStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#3E9A3A")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("#7CDB6A")).Foreground(lipgloss.Color("#000000")),
		borderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#3E9A3A")),
	}
}

// SetColumns replaces the columns. Rows must be set again to match.
func (t *Table) SetColumns(columns []Column) {
	t.columns = columns
}

// Width returns the rendered width of a table with the given columns.
func Width(columns []Column) int {
	if len(columns) == 0 {
		return 0
	}
	total := 2 + 3*(len(columns)-1) // outer padding and separators
	for _, col := range columns {
		total += col.Width
	}
	return total
}

// SetRows sets the table data. The selection is kept in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = max(len(rows)-1, 0)
	}
	t.clampOffset()
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	t.visibleRows = max(n, 1)
	t.clampOffset()
}

// SetStyles sets the table styles.
func (t *Table) SetStyles(header, row, rowAlt, selected, border lipgloss.Style) {
	t.headerStyle = header
	t.rowStyle = row
	t.rowAltStyle = rowAlt
	t.selectedStyle = selected
	t.borderStyle = border
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// GoToBottom selects the last row.
func (t *Table) GoToBottom() {
	t.selected = max(len(t.rows)-1, 0)
	t.clampOffset()
}

// clampOffset scrolls so the selected row is visible.
func (t *Table) clampOffset() {
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
	if t.offset > max(len(t.rows)-t.visibleRows, 0) {
		t.offset = max(len(t.rows)-t.visibleRows, 0)
	}
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(t.borderStyle.Render(strings.Repeat("-", Width(t.columns))))

	endIdx := min(t.offset+t.visibleRows, len(t.rows))
	for i := t.offset; i < endIdx; i++ {
		style := t.rowStyle
		switch {
		case i == t.selected && t.focused:
			style = t.selectedStyle
		case (i-t.offset)%2 == 1:
			style = t.rowAltStyle
		}

		b.WriteString("\n")
		b.WriteString(t.renderRow(t.rows[i], style))
	}

	if len(t.rows) > t.visibleRows {
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(fmt.Sprintf("Showing %d-%d of %d", t.offset+1, endIdx, len(t.rows))))
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(t.columns))

	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		runes := []rune(cell)
		if len(runes) > col.Width {
			cell = string(runes[:col.Width-1]) + "…"
		}

		parts[i] = style.Render(lipgloss.PlaceHorizontal(col.Width, col.Align, cell))
	}

	return " " + strings.Join(parts, " | ") + " "
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
