package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formats rows into left-aligned columns. Widths are measured in
// terminal cells, so cells may carry ANSI styling such as colour swatches.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	var b strings.Builder
	t.writeRow(&b, t.headers, widths)
	t.writeRow(&b, sep, widths)
	for _, row := range t.rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

func (t *Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	gap := strings.Repeat(" ", t.padding)
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(cell)
		// The last column is not padded, so lines carry no trailing spaces.
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
	}
	b.WriteString("\n")
}
