package tablebuilder

import (
	"bytes"
	"fmt"
	"slices"
)

// Column describes one column of an assembled table.
type Column struct {
	Header      Cell
	Footer      Cell
	Justify     Justify
	Style       Style
	HeaderStyle Style
	FooterStyle Style
	MaxWidth    int
	Wrap        bool
}

// Table is an assembled grid ready to be rendered by a [Sink]. It is
// created fresh by every build and owned by the caller.
//
// In a normal table each column is a field and each row a record. In a
// transposed table each row is a field and each column a record, with the
// header and footer (when shown) as the first and last cell of every row.
type Table struct {
	Columns []Column
	Rows    [][]Cell
	// Sections lists, in ascending order, the row indexes that are preceded
	// by a section break.
	Sections   []int
	Transposed bool
	Options    Options
}

// NumRows returns the number of body rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// SectionBefore reports whether a section break precedes row i.
func (t *Table) SectionBefore(i int) bool {
	_, found := slices.BinarySearch(t.Sections, i)
	return found
}

// Headers returns the column headers.
func (t *Table) Headers() []Cell {
	out := make([]Cell, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// Footers returns the column footers.
func (t *Table) Footers() []Cell {
	out := make([]Cell, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Footer
	}
	return out
}

// String renders the table in [FormatTable].
func (t *Table) String() string {
	var buf bytes.Buffer
	if err := writeTable(&buf, t); err != nil {
		return fmt.Sprintf("!table(%v)", err)
	}
	return buf.String()
}

type fieldContent struct {
	header Cell
	values []Cell
	footer Cell
}

func buildFieldContent(f *Field, records []any, o Options, applyStyle bool) (fieldContent, error) {
	raw, err := f.Values(records)
	if err != nil {
		return fieldContent{}, err
	}
	header, err := f.Header(raw, applyStyle, o.HeaderStyle)
	if err != nil {
		return fieldContent{}, err
	}
	footer, err := f.Footer(raw, applyStyle, o.FooterStyle)
	if err != nil {
		return fieldContent{}, err
	}
	values := make([]Cell, len(raw))
	for i, v := range raw {
		if values[i], err = f.Format(v, applyStyle, o.Style); err != nil {
			return fieldContent{}, err
		}
	}
	return fieldContent{header: header, values: values, footer: footer}, nil
}

func (s *Spec) assembleNormal(records []any, o Options) (*Table, error) {
	items := slices.Clone(records)
	var markers []any
	if o.section != nil {
		items, markers = o.section.sort(items)
	}

	columns := make([]Column, 0, len(s.fields))
	rows := make([][]Cell, len(items))
	for i := range rows {
		rows[i] = make([]Cell, 0, len(s.fields))
	}
	for _, f := range s.fields {
		content, err := buildFieldContent(f, items, o, false)
		if err != nil {
			return nil, err
		}
		columns = append(columns, f.Column(content.header, content.footer))
		for i, v := range content.values {
			rows[i] = append(rows[i], v)
		}
	}

	var sections []int
	for i := 1; i < len(markers); i++ {
		if o.section.compare(markers[i-1], markers[i]) != 0 {
			sections = append(sections, i)
		}
	}

	return &Table{Columns: columns, Rows: rows, Sections: sections, Options: o}, nil
}

// sort orders records stably by section key and returns the sorted records
// with their keys.
func (sc *sectioner) sort(records []any) ([]any, []any) {
	keys := make([]any, len(records))
	order := make([]int, len(records))
	for i, r := range records {
		keys[i] = sc.key(r)
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return sc.compare(keys[a], keys[b])
	})
	sorted := make([]any, len(records))
	markers := make([]any, len(records))
	for i, j := range order {
		sorted[i] = records[j]
		markers[i] = keys[j]
	}
	return sorted, markers
}

// assembleTransposed builds one row per field. The sink cannot draw header
// and footer columns for a transposed table, so they are emitted as the
// first and last cell of each row and the sink's own header and footer are
// switched off.
func (s *Spec) assembleTransposed(records []any, o Options) (*Table, error) {
	showHeader, showFooter := o.ShowHeader, o.ShowFooter
	o.ShowHeader, o.ShowFooter = false, false

	n := len(records)
	if showHeader {
		n++
	}
	if showFooter {
		n++
	}
	columns := make([]Column, n)
	for i := range columns {
		columns[i] = Column{Header: Text(fmt.Sprintf("row%d", i))}
	}

	rows := make([][]Cell, 0, len(s.fields))
	for _, f := range s.fields {
		content, err := buildFieldContent(f, records, o, true)
		if err != nil {
			return nil, err
		}
		row := make([]Cell, 0, n)
		if showHeader {
			row = append(row, content.header)
		}
		row = append(row, content.values...)
		if showFooter {
			row = append(row, content.footer)
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows, Transposed: true, Options: o}, nil
}
