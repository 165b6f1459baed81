package tablebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapCellWideCharSafety(t *testing.T) {
	t.Parallel()
	// "你" is two columns wide and cannot fit in one; it must still be
	// emitted alone so wrapping advances.
	lines := wrapCell("你好", 1)
	assert.Equal(t, []string{"你", "好"}, lines)
}

func TestWrapCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		width int
		want  []string
	}{
		"no wrap": {input: "hi", width: 0, want: []string{"hi"}},
		"fits":    {input: "hi", width: 5, want: []string{"hi"}},
		"basic":   {input: "Hello", width: 3, want: []string{"Hel", "lo"}},
		"exact":   {input: "abcdef", width: 3, want: []string{"abc", "def"}},
		"wide":    {input: "你好世界", width: 4, want: []string{"你好", "世界"}},
		"empty":   {input: "", width: 3, want: []string{""}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapCell(tt.input, tt.width))
		})
	}
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		width int
		j     Justify
		want  string
	}{
		"left":      {input: "ab", width: 5, j: JustifyLeft, want: "ab   "},
		"right":     {input: "ab", width: 5, j: JustifyRight, want: "   ab"},
		"center":    {input: "ab", width: 5, j: JustifyCenter, want: " ab  "},
		"too wide":  {input: "abcdef", width: 3, j: JustifyRight, want: "abcdef"},
		"wide rune": {input: "你", width: 4, j: JustifyRight, want: "  你"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, alignCell(tt.input, tt.width, tt.j))
		})
	}
}

func TestFormatTableCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab...", formatTableCell("abcdefgh", 5, JustifyLeft))
	assert.Equal(t, "abc", formatTableCell("abcdefgh", 3, JustifyLeft))
	assert.Equal(t, "  x", formatTableCell("x", 3, JustifyRight))
}

func TestComputeWidths(t *testing.T) {
	t.Parallel()
	header := []Cell{Text("Name"), Text("Q")}
	rows := [][]Cell{
		{Text("a"), Text("12345")},
		{Text("multi\nline text"), Text("1")},
		{Text("extra"), Text("1"), Text("ignored beyond columns")},
	}
	footer := []Cell{Text("Total")}
	assert.Equal(t, []int{9, 5}, computeWidths(2, header, rows, footer))
	assert.Equal(t, []int{0, 0}, computeWidths(2, nil, nil, nil))
}

func TestASCIIBorder(t *testing.T) {
	t.Parallel()
	rounded := asciiBorder(borderSets[BoxRounded])
	assert.Equal(t, borderSets[BoxASCII], rounded)

	horizontals := asciiBorder(borderSets[BoxHorizontals])
	assert.Equal(t, "-", horizontals.topLeft)
	assert.Equal(t, "-", horizontals.cross)
	assert.Equal(t, " ", horizontals.vertical)

	simple := asciiBorder(borderSets[BoxSimple])
	assert.Empty(t, simple.topLeft)
	assert.True(t, simple.noEdge)
}

func TestHighlightStyle(t *testing.T) {
	t.Parallel()
	tests := map[string]Style{
		"42":        "bold cyan",
		"-3.5":      "bold cyan",
		"1,234,567": "bold cyan",
		" 7 ":       "bold cyan",
		"true":      "italic bright_green",
		"False":     "italic bright_red",
		"<nil>":     "italic magenta",
		"None":      "italic magenta",
		"hello":     "",
		"":          "",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, highlightStyle(input))
		})
	}
}

func TestFitShrinksWidestFirst(t *testing.T) {
	t.Parallel()
	l := &layout{
		o:      Options{Width: 7},
		plain:  true,
		widths: []int{4, 3},
		padL:   []int{0, 0},
		padR:   []int{0, 0},
	}
	l.fit()
	assert.Equal(t, []int{2, 3}, l.widths)
	assert.Equal(t, 7, l.totalWidth())
}

func TestFitGrowsFirstColumnsWithRemainder(t *testing.T) {
	t.Parallel()
	l := &layout{
		o:      Options{MinWidth: 12},
		plain:  true,
		widths: []int{1, 1, 1},
		padL:   []int{0, 0, 0},
		padR:   []int{0, 0, 0},
	}
	l.fit()
	assert.Equal(t, []int{3, 3, 2}, l.widths)
	assert.Equal(t, 12, l.totalWidth())
}
