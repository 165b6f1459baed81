package tablebuilder

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", "<br>")

// writeMarkdown renders a GitHub-flavored Markdown table. Markdown tables
// always have a header line, so a hidden header is written blank. Title and
// caption become paragraphs around the table.
func writeMarkdown(w io.Writer, t *Table) error {
	numCols := len(t.Columns)
	if numCols == 0 {
		return nil
	}
	header, rows, footer := grid(t)
	if header == nil {
		header = make([]string, numCols)
	}
	if footer != nil {
		rows = append(rows, footer)
	}
	escape := func(cells []string) []string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = markdownEscaper.Replace(c)
		}
		return out
	}
	header = escape(header)
	for i := range rows {
		rows[i] = escape(rows[i])
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	if t.Options.Title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", t.Options.Title); err != nil {
			return err
		}
	}

	if err := writeMarkdownRow(w, header, widths, t.Columns); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		switch t.Columns[i].Justify {
		case JustifyRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case JustifyCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, t.Columns); err != nil {
			return err
		}
	}

	if t.Options.Caption != "" {
		if _, err := fmt.Fprintf(w, "\n_%s_\n", t.Options.Caption); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, cols []Column) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, cols[i].Justify)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
