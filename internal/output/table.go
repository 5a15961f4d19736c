package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("240"),
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// RenderGeneratorTable renders the generator listing used by "nrc list".
func RenderGeneratorTable(generators []GeneratorRow) string {
	t := NewTable("GENERATOR", "KIND", "DESCRIPTION")

	for _, g := range generators {
		kind := g.Kind
		if kind == "" {
			kind = "-"
		}
		t.Row(g.Name, kind, g.Description)
	}

	return t.String()
}

// GeneratorRow is one line of the generator listing.
type GeneratorRow struct {
	Name        string
	Kind        string
	Description string
}

// RenderList renders names with descriptions aligned at alignColumn, each
// line prefixed with indent.
func RenderList(entries []ListEntry, indent string, alignColumn int) string {
	var b strings.Builder
	for _, e := range entries {
		padding := alignColumn - len(e.Name)
		if padding < 1 {
			padding = 1
		}
		b.WriteString(indent)
		b.WriteString(e.Name)
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(e.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// ListEntry is one line of an aligned listing.
type ListEntry struct {
	Name        string
	Description string
}
