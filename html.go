package tablebuilder

import (
	"fmt"
	"html"
	"io"
	"slices"
)

// writeHTML renders a <table>. Each section becomes its own <tbody> and a
// cell's style is carried in its class attribute.
func writeHTML(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	o := t.Options

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if o.Title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(o.Title)); err != nil {
			return err
		}
	}

	if o.ShowHeader {
		if err := writeHTMLSection(w, "thead", "th", [][]Cell{t.Headers()}, t.Columns); err != nil {
			return err
		}
	}

	start := 0
	for _, end := range append(slices.Clone(t.Sections), len(t.Rows)) {
		if end <= start && len(t.Rows) > 0 {
			continue
		}
		if err := writeHTMLSection(w, "tbody", "td", t.Rows[start:end], t.Columns); err != nil {
			return err
		}
		start = end
	}

	if o.ShowFooter {
		if err := writeHTMLSection(w, "tfoot", "td", [][]Cell{t.Footers()}, t.Columns); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "</table>"); err != nil {
		return err
	}
	if o.Caption != "" {
		if _, err := fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(o.Caption)); err != nil {
			return err
		}
	}
	return nil
}

func writeHTMLSection(w io.Writer, tag, cellTag string, rows [][]Cell, cols []Column) error {
	if _, err := fmt.Fprintf(w, "  <%s>\n", tag); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range row {
			attrs := alignStyle(cols, i) + classAttr(cell.Style)
			if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", cellTag, attrs, html.EscapeString(cell.Text), cellTag); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  </%s>\n", tag)
	return err
}

func alignStyle(cols []Column, col int) string {
	if col >= len(cols) {
		return ""
	}
	switch cols[col].Justify {
	case JustifyRight:
		return ` style="text-align: right"`
	case JustifyCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}

func classAttr(s Style) string {
	if s.IsZero() {
		return ""
	}
	return fmt.Sprintf(` class="%s"`, html.EscapeString(string(s)))
}
