package tablebuilder

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", "")

func writeTSV(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	header, rows, footer := grid(t)
	line := func(cells []string) error {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = tsvEscaper.Replace(c)
		}
		_, err := fmt.Fprintln(w, strings.Join(escaped, "\t"))
		return err
	}
	if header != nil {
		if err := line(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := line(row); err != nil {
			return err
		}
	}
	if footer != nil {
		return line(footer)
	}
	return nil
}
