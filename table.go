package tablebuilder

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
	noEdge                                     bool
}

var borderSets = map[BoxStyle]borderChars{
	BoxRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BoxSquare: {
		topLeft: "┌", topRight: "┐", bottomLeft: "└", bottomRight: "┘",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BoxASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BoxHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BoxDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
	BoxHorizontals: {
		topLeft: "─", topRight: "─", bottomLeft: "─", bottomRight: "─",
		horizontal: "─", vertical: " ",
		topTee: "─", bottomTee: "─", leftTee: "─", rightTee: "─",
		cross: "─",
	},
	BoxSimple: {
		horizontal: "─", vertical: " ",
		topTee: "─", bottomTee: "─", leftTee: "─", rightTee: "─",
		cross:  "─",
		noEdge: true,
	},
}

// asciiBorder replaces box-drawing characters with their ASCII look-alikes.
func asciiBorder(bc borderChars) borderChars {
	joint := func(s string) string {
		switch {
		case s == "" || s == " ":
			return s
		case s == bc.horizontal:
			return "-"
		default:
			return "+"
		}
	}
	out := bc
	out.topLeft, out.topRight = joint(bc.topLeft), joint(bc.topRight)
	out.bottomLeft, out.bottomRight = joint(bc.bottomLeft), joint(bc.bottomRight)
	out.topTee, out.bottomTee = joint(bc.topTee), joint(bc.bottomTee)
	out.leftTee, out.rightTee = joint(bc.leftTee), joint(bc.rightTee)
	out.cross = joint(bc.cross)
	out.horizontal = "-"
	if bc.vertical != " " {
		out.vertical = "|"
	}
	return out
}

// layout holds everything needed to draw one table.
type layout struct {
	t      *Table
	o      Options
	styler Styler
	bc     borderChars
	plain  bool
	edge   bool
	cols   []Column
	widths []int
	padL   []int
	padR   []int
	header []Cell
	footer []Cell
}

func writeTable(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	l := newLayout(t)
	if l.plain {
		return l.renderPlain(w)
	}
	return l.renderBordered(w)
}

func newLayout(t *Table) *layout {
	o := t.Options
	l := &layout{t: t, o: o, styler: o.styler(), cols: t.Columns}
	if o.Box == BoxNone {
		l.plain = true
	} else {
		bc, ok := borderSets[o.Box]
		if !ok {
			bc = borderSets[BoxRounded]
		}
		if o.SafeBox {
			bc = asciiBorder(bc)
		}
		l.bc = bc
		l.edge = o.ShowEdge && !bc.noEdge
	}
	if o.ShowHeader {
		l.header = t.Headers()
	}
	if o.ShowFooter {
		l.footer = t.Footers()
	}

	n := len(t.Columns)
	l.padL = make([]int, n)
	l.padR = make([]int, n)
	if !l.plain {
		for i := range n {
			l.padL[i] = max(0, o.Padding.Left)
			l.padR[i] = max(0, o.Padding.Right)
		}
		if !o.PadEdge {
			l.padL[0] = 0
			l.padR[n-1] = 0
		}
		if o.CollapsePadding {
			for i := 1; i < n; i++ {
				l.padL[i] = max(0, l.padL[i]-l.padR[i-1])
			}
		}
	}

	l.widths = computeWidths(n, l.header, t.Rows, l.footer)
	for i, c := range l.cols {
		if c.MaxWidth > 0 && l.widths[i] > c.MaxWidth {
			l.widths[i] = c.MaxWidth
		}
	}
	l.fit()
	return l
}

func computeWidths(numCols int, header []Cell, rows [][]Cell, footer []Cell) []int {
	widths := make([]int, numCols)
	measure := func(cells []Cell) {
		for i, c := range cells {
			if i >= numCols {
				break
			}
			if w := textWidth(c.Text); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	measure(footer)
	return widths
}

func textWidth(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n = max(n, runewidth.StringWidth(line))
	}
	return n
}

// totalWidth returns the full rendered width of a table line.
func (l *layout) totalWidth() int {
	n := 0
	for i, w := range l.widths {
		n += w + l.padL[i] + l.padR[i]
	}
	if l.plain {
		return n + 2*max(0, len(l.widths)-1)
	}
	v := runewidth.StringWidth(l.bc.vertical)
	n += v * max(0, len(l.widths)-1)
	if l.edge {
		n += 2 * v
	}
	return n
}

// fit narrows or widens the columns to honor Width, MinWidth and a boxed
// title.
func (l *layout) fit() {
	total := l.totalWidth()
	if l.o.Width > 0 && total > l.o.Width {
		for total > l.o.Width {
			widest := 0
			for i, w := range l.widths {
				if w > l.widths[widest] {
					widest = i
				}
			}
			if l.widths[widest] <= 1 {
				break
			}
			l.widths[widest]--
			total--
		}
	}

	want := l.o.MinWidth
	if l.o.Width > 0 && (l.o.Expand || total < l.o.Width) {
		want = max(want, l.o.Width)
	}
	if l.boxedTitle() {
		want = max(want, runewidth.StringWidth(l.o.Title)+4)
	}
	if grow := want - total; grow > 0 && len(l.widths) > 0 {
		each, extra := grow/len(l.widths), grow%len(l.widths)
		for i := range l.widths {
			l.widths[i] += each
			if i < extra {
				l.widths[i]++
			}
		}
	}
}

func (l *layout) boxedTitle() bool {
	return l.o.Title != "" && !l.plain && l.edge
}

// --- styles ---

func (l *layout) bodyStyles(i int, row []Cell) []Style {
	styles := make([]Style, len(l.cols))
	base := l.o.Style
	if len(l.o.RowStyles) > 0 {
		base = base.Add(l.o.RowStyles[i%len(l.o.RowStyles)])
	}
	for j, col := range l.cols {
		var cell Cell
		if j < len(row) {
			cell = row[j]
		}
		own := cell.Style
		if own.IsZero() && l.o.Highlight {
			own = highlightStyle(cell.Text)
		}
		styles[j] = base.Add(col.Style).Add(own)
	}
	return styles
}

func (l *layout) edgeStyles(cells []Cell, def Style, pick func(Column) Style) []Style {
	styles := make([]Style, len(l.cols))
	for j, col := range l.cols {
		s := def.Add(pick(col))
		if j < len(cells) {
			s = s.Add(cells[j].Style)
		}
		styles[j] = s
	}
	return styles
}

func (l *layout) headerStyles() []Style {
	return l.edgeStyles(l.header, l.o.HeaderStyle, func(c Column) Style { return c.HeaderStyle })
}

func (l *layout) footerStyles() []Style {
	return l.edgeStyles(l.footer, l.o.FooterStyle, func(c Column) Style { return c.FooterStyle })
}

// highlightStyle picks a style for text that looks like a number or a
// boolean, or none.
func highlightStyle(text string) Style {
	s := strings.TrimSpace(text)
	switch s {
	case "":
		return ""
	case "true", "True":
		return "italic bright_green"
	case "false", "False":
		return "italic bright_red"
	case "nil", "None", "null", "<nil>":
		return "italic magenta"
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return "bold cyan"
	}
	return ""
}

// --- cell text ---

// rowLines splits a row into visual lines: embedded newlines always break,
// and wrapping columns fold long lines at the column width.
func (l *layout) rowLines(cells []Cell) [][]string {
	wrapped := make([][]string, len(l.widths))
	for i := range l.widths {
		text := ""
		if i < len(cells) {
			text = cells[i].Text
		}
		for _, line := range strings.Split(text, "\n") {
			if l.cols[i].Wrap {
				wrapped[i] = append(wrapped[i], wrapCell(line, l.widths[i])...)
			} else {
				wrapped[i] = append(wrapped[i], line)
			}
		}
	}
	n := maxLines(wrapped)
	lines := make([][]string, n)
	for k := range n {
		lines[k] = make([]string, len(l.widths))
		for i := range l.widths {
			if k < len(wrapped[i]) {
				lines[k][i] = wrapped[i][k]
			}
		}
	}
	return lines
}

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// The next rune is wider than the column; emit it alone so the
			// loop always advances.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

func maxLines(wrapped [][]string) int {
	n := 1
	for _, lines := range wrapped {
		if len(lines) > n {
			n = len(lines)
		}
	}
	return n
}

// --- plain table (BoxNone) ---

func (l *layout) renderPlain(w io.Writer) error {
	total := l.totalWidth()
	if l.o.Title != "" {
		if err := l.writeAligned(w, l.o.Title, total, l.o.TitleJustify, l.o.TitleStyle); err != nil {
			return err
		}
	}
	if l.header != nil {
		if err := l.writePlainRow(w, l.header, l.headerStyles()); err != nil {
			return err
		}
		if err := l.writePlainSep(w); err != nil {
			return err
		}
	}
	for i, row := range l.t.Rows {
		if i > 0 {
			if l.t.SectionBefore(i) || l.o.ShowLines {
				if err := l.writePlainSep(w); err != nil {
					return err
				}
			} else if err := l.writeBlank(w, l.o.Leading); err != nil {
				return err
			}
		}
		if l.o.PageSize > 0 && l.header != nil && i > 0 && i%l.o.PageSize == 0 {
			if err := l.writePlainSep(w); err != nil {
				return err
			}
			if err := l.writePlainRow(w, l.header, l.headerStyles()); err != nil {
				return err
			}
			if err := l.writePlainSep(w); err != nil {
				return err
			}
		}
		if err := l.writePlainRow(w, row, l.bodyStyles(i, row)); err != nil {
			return err
		}
	}
	if l.footer != nil {
		if err := l.writePlainSep(w); err != nil {
			return err
		}
		if err := l.writePlainRow(w, l.footer, l.footerStyles()); err != nil {
			return err
		}
	}
	if l.o.Caption != "" {
		return l.writeAligned(w, l.o.Caption, total, l.o.CaptionJustify, l.o.CaptionStyle)
	}
	return nil
}

func (l *layout) writePlainSep(w io.Writer) error {
	sep := make([]string, len(l.widths))
	for i, width := range l.widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, l.styler(l.o.BorderStyle, strings.Join(sep, "  ")))
	return err
}

func (l *layout) writePlainRow(w io.Writer, cells []Cell, styles []Style) error {
	for _, texts := range l.rowLines(cells) {
		parts := make([]string, len(l.widths))
		for i, width := range l.widths {
			parts[i] = l.styler(styles[i], formatTableCell(texts[i], width, l.cols[i].Justify))
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// --- bordered table ---

func (l *layout) renderBordered(w io.Writer) error {
	bc := l.bc
	total := l.totalWidth()

	switch {
	case l.boxedTitle():
		// Full-width top border (no column separators).
		if err := l.drawHLine(w, bc.topLeft, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := max(0, total-2*runewidth.StringWidth(bc.vertical)-2)
		title := l.styler(l.o.TitleStyle, formatTableCell(l.o.Title, inner, l.o.TitleJustify))
		v := l.styler(l.o.BorderStyle, bc.vertical)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", v, title, v); err != nil {
			return err
		}
		// Transition to columns.
		if err := l.drawHLine(w, bc.leftTee, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	case l.o.Title != "":
		if err := l.writeAligned(w, l.o.Title, total, l.o.TitleJustify, l.o.TitleStyle); err != nil {
			return err
		}
		fallthrough
	default:
		if l.edge {
			if err := l.drawHLine(w, bc.topLeft, bc.topTee, bc.topRight); err != nil {
				return err
			}
		}
	}

	sep := func() error { return l.drawHLine(w, bc.leftTee, bc.cross, bc.rightTee) }

	if l.header != nil {
		if err := l.drawRow(w, l.header, l.headerStyles()); err != nil {
			return err
		}
		if err := sep(); err != nil {
			return err
		}
	}

	for i, row := range l.t.Rows {
		if i > 0 {
			if l.t.SectionBefore(i) || l.o.ShowLines {
				if err := sep(); err != nil {
					return err
				}
			} else if err := l.writeBlank(w, l.o.Leading); err != nil {
				return err
			}
		}
		if l.o.PageSize > 0 && l.header != nil && i > 0 && i%l.o.PageSize == 0 {
			if err := sep(); err != nil {
				return err
			}
			if err := l.drawRow(w, l.header, l.headerStyles()); err != nil {
				return err
			}
			if err := sep(); err != nil {
				return err
			}
		}
		if err := l.drawRow(w, row, l.bodyStyles(i, row)); err != nil {
			return err
		}
	}

	if l.footer != nil {
		if err := sep(); err != nil {
			return err
		}
		if err := l.drawRow(w, l.footer, l.footerStyles()); err != nil {
			return err
		}
	}

	if l.edge {
		if err := l.drawHLine(w, bc.bottomLeft, bc.bottomTee, bc.bottomRight); err != nil {
			return err
		}
	}
	if l.o.Caption != "" {
		return l.writeAligned(w, l.o.Caption, total, l.o.CaptionJustify, l.o.CaptionStyle)
	}
	return nil
}

func (l *layout) drawHLine(w io.Writer, left, mid, right string) error {
	var sb strings.Builder
	if l.edge {
		sb.WriteString(left)
	}
	for i, width := range l.widths {
		sb.WriteString(strings.Repeat(l.bc.horizontal, width+l.padL[i]+l.padR[i]))
		if i < len(l.widths)-1 {
			sb.WriteString(mid)
		}
	}
	if l.edge {
		sb.WriteString(right)
	}
	_, err := fmt.Fprintln(w, l.styler(l.o.BorderStyle, sb.String()))
	return err
}

func (l *layout) drawRow(w io.Writer, cells []Cell, styles []Style) error {
	if err := l.writeBlank(w, l.o.Padding.Top); err != nil {
		return err
	}
	for _, texts := range l.rowLines(cells) {
		if err := l.drawLine(w, texts, styles); err != nil {
			return err
		}
	}
	return l.writeBlank(w, l.o.Padding.Bottom)
}

func (l *layout) drawLine(w io.Writer, texts []string, styles []Style) error {
	v := l.styler(l.o.BorderStyle, l.bc.vertical)
	var sb strings.Builder
	if l.edge {
		sb.WriteString(v)
	}
	for i, width := range l.widths {
		sb.WriteString(strings.Repeat(" ", l.padL[i]))
		formatted := formatTableCell(texts[i], width, l.cols[i].Justify)
		if styles != nil {
			formatted = l.styler(styles[i], formatted)
		}
		sb.WriteString(formatted)
		sb.WriteString(strings.Repeat(" ", l.padR[i]))
		if i < len(l.widths)-1 {
			sb.WriteString(v)
		}
	}
	if l.edge {
		sb.WriteString(v)
	}
	line := sb.String()
	if !l.edge {
		line = strings.TrimRight(line, " ")
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// writeBlank writes n empty lines. Bordered tables keep their verticals.
func (l *layout) writeBlank(w io.Writer, n int) error {
	for range n {
		var err error
		if l.plain {
			_, err = fmt.Fprintln(w)
		} else {
			err = l.drawLine(w, make([]string, len(l.widths)), nil)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *layout) writeAligned(w io.Writer, s string, width int, j Justify, style Style) error {
	line := l.styler(style, formatTableCell(s, width, j))
	_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
	return err
}

func formatTableCell(s string, width int, j Justify) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, j)
}

func alignCell(s string, width int, j Justify) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch j {
	case JustifyRight:
		return strings.Repeat(" ", pad) + s
	case JustifyCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
