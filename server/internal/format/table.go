package format

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Table wraps a go-pretty writer. Build it once, then call String.
type Table struct {
	writer table.Writer
	mode   Mode
	title  string
}

// NewTable returns an empty Table that renders in mode m.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
		// Keep labels as written; StyleLight upper-cases headers and footers.
		w.Style().Format.Header = text.FormatDefault
		w.Style().Format.Footer = text.FormatDefault
	}
	return &Table{writer: w, mode: m}
}

// Title sets a caption printed on its own line above the table. go-pretty's
// own title row is wrapped to the table width, which splits long captions.
func (t *Table) Title(s string) {
	t.title = s
}

// Header sets the column headers.
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends a data row.
func (t *Table) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
}

// Footer appends a footer row, e.g. totals.
func (t *Table) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendFooter(row)
}

// AlignRight right-aligns the given 1-based columns.
func (t *Table) AlignRight(cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, n := range cols {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight}
	}
	t.writer.SetColumnConfigs(cfgs)
}

// String renders the table in its Mode.
func (t *Table) String() string {
	body := t.writer.Render()
	if t.mode == Markdown {
		body = t.writer.RenderMarkdown()
	}
	if t.title == "" {
		return body
	}
	var b strings.Builder
	if t.mode == Markdown {
		b.WriteString("**" + t.title + "**\n\n")
	} else {
		b.WriteString(t.title + "\n")
	}
	b.WriteString(body)
	return b.String()
}
