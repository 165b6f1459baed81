package tablebuilder

import (
	"encoding/csv"
	"io"
)

// grid flattens a table to text. header and footer are nil when hidden.
func grid(t *Table) (header []string, rows [][]string, footer []string) {
	if t.Options.ShowHeader {
		header = texts(t.Headers())
	}
	rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = texts(row)
	}
	if t.Options.ShowFooter {
		footer = texts(t.Footers())
	}
	return header, rows, footer
}

func texts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

func writeCSV(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	header, rows, footer := grid(t)
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	if footer != nil {
		if err := cw.Write(footer); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
