package tablebuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Style is a space-separated list of text attributes and colors, for example
// "bold red on white". The empty style and "none" apply nothing. Theme names
// such as "table.header" are expanded by the [Styler] that renders them.
type Style string

// Theme styles used by the default options.
const (
	StyleNone    Style = "none"
	StyleHeader  Style = "table.header"
	StyleFooter  Style = "table.footer"
	StyleTitle   Style = "table.title"
	StyleCaption Style = "table.caption"
)

// IsZero reports whether s applies nothing.
func (s Style) IsZero() bool {
	return strings.TrimSpace(string(s)) == "" || s == StyleNone
}

// Add layers other on top of s. Attributes of other win where they
// conflict, so a cell style added onto a column style takes precedence.
func (s Style) Add(other Style) Style {
	switch {
	case other.IsZero():
		return s
	case s.IsZero():
		return other
	}
	return s + " " + other
}

// Or returns s, or fallback when s applies nothing.
func (s Style) Or(fallback Style) Style {
	if s.IsZero() {
		return fallback
	}
	return s
}

// Cell is one rendered value: text plus the style it should be drawn with.
type Cell struct {
	Text  string `json:"text" yaml:"text"`
	Style Style  `json:"style,omitempty" yaml:"style,omitempty"`
}

// Text returns an unstyled cell.
func Text(s string) Cell { return Cell{Text: s} }

// Styled returns a cell drawn with style.
func Styled(s string, style Style) Cell { return Cell{Text: s, Style: style} }

// WithStyle wraps c in style. The cell's own style stays on top, so a
// formatter that colors negative numbers red keeps that color inside a
// bold row.
func (c Cell) WithStyle(style Style) Cell {
	return Cell{Text: c.Text, Style: style.Add(c.Style)}
}

// String returns the cell text.
func (c Cell) String() string { return c.Text }

// Justify controls horizontal alignment of text within a cell.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

var justifyNames = map[Justify]string{
	JustifyLeft:   "left",
	JustifyCenter: "center",
	JustifyRight:  "right",
}

func (j Justify) String() string {
	if s, ok := justifyNames[j]; ok {
		return s
	}
	return fmt.Sprintf("Justify(%d)", int(j))
}

// ParseJustify parses "left", "center" or "right".
func ParseJustify(s string) (Justify, error) {
	for j, name := range justifyNames {
		if strings.EqualFold(s, name) {
			return j, nil
		}
	}
	return JustifyLeft, fmt.Errorf("%w: justify %q", ErrInvalidOption, s)
}

// Styler turns styled text into its terminal representation. It is called
// after padding and alignment, so escape codes never affect widths.
type Styler func(style Style, text string) string

// PlainStyler drops all styling.
func PlainStyler(_ Style, text string) string { return text }

// --- value-consistent styling ---

// StyleByValue assigns a style to each distinct value the first time it is
// seen and returns the same style for every later occurrence of an equal
// value. One instance may be shared across several tables to color them
// consistently; it is safe for concurrent use.
type StyleByValue struct {
	next func() Style

	mu   sync.Mutex
	seen map[any]Style
}

// NewStyleByValue returns a memo drawing fresh styles from next.
func NewStyleByValue(next func() Style) *StyleByValue {
	return &StyleByValue{next: next, seen: make(map[any]Style)}
}

type unhashable string

// StyleFor returns the style remembered for v, assigning one on first sight.
func (s *StyleByValue) StyleFor(v any) Style {
	key := v
	if v != nil && !reflect.ValueOf(v).Comparable() {
		key = unhashable(fmt.Sprintf("%#v", v))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	style, ok := s.seen[key]
	if !ok {
		style = s.next()
		s.seen[key] = style
	}
	return style
}

// Format is a [Formatter]: it stringifies v and styles it by value.
func (s *StyleByValue) Format(v any) (Cell, error) {
	c, err := Stringify(v)
	if err != nil {
		return Cell{}, err
	}
	return c.WithStyle(s.StyleFor(v)), nil
}

// RainbowColors is the palette used by [NewRainbow].
var RainbowColors = []Style{
	"red",
	"orange1",
	"yellow2",
	"green3",
	"cyan1",
	"deep_sky_blue1",
	"dark_blue",
	"dark_violet",
}

// Cycle hands out styles from a fixed palette in order, wrapping around at
// the end. It is safe for concurrent use.
type Cycle struct {
	mu     sync.Mutex
	styles []Style
	idx    int
}

// NewCycle returns a cycle over styles.
func NewCycle(styles ...Style) *Cycle {
	return &Cycle{styles: append([]Style(nil), styles...)}
}

// NewRainbow returns a cycle over [RainbowColors].
func NewRainbow() *Cycle { return NewCycle(RainbowColors...) }

// Next returns the next style. An empty cycle always returns "".
func (c *Cycle) Next() Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.styles) == 0 {
		return ""
	}
	s := c.styles[c.idx]
	c.idx = (c.idx + 1) % len(c.styles)
	return s
}

// RainbowByValue returns a fresh memo coloring each distinct value with the
// next rainbow color.
func RainbowByValue() *StyleByValue {
	return NewStyleByValue(NewRainbow().Next)
}
