package tablebuilder

import (
	"cmp"
	"log/slog"
)

// Padding is the space around cell content, in lines (top, bottom) and
// columns (left, right).
type Padding struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Options configures a build and the rendering of its table. Options are
// assembled from built-in defaults, then the options given to
// [Spec.Builder], then those given to [Builder.Build]; later ones win.
type Options struct {
	Title           string
	Caption         string
	Width           int
	MinWidth        int
	Box             BoxStyle
	SafeBox         bool
	Padding         Padding
	CollapsePadding bool
	PadEdge         bool
	Expand          bool
	ShowHeader      bool
	ShowFooter      bool
	ShowEdge        bool
	ShowLines       bool
	Leading         int
	Style           Style
	RowStyles       []Style
	HeaderStyle     Style
	FooterStyle     Style
	BorderStyle     Style
	TitleStyle      Style
	CaptionStyle    Style
	TitleJustify    Justify
	CaptionJustify  Justify
	Highlight       bool

	// PageSize repeats the header every PageSize rows. Zero disables it.
	PageSize int
	// Styler renders styles. nil means [PlainStyler].
	Styler Styler

	// Transposed lays fields out as rows and records as columns.
	Transposed bool

	section *sectioner
	logger  *slog.Logger
}

// Option sets one or more [Options].
type Option func(*Options)

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Box:            BoxRounded,
		Padding:        Padding{Right: 1, Left: 1},
		PadEdge:        true,
		ShowHeader:     true,
		ShowEdge:       true,
		Style:          StyleNone,
		HeaderStyle:    StyleHeader,
		FooterStyle:    StyleFooter,
		TitleStyle:     StyleTitle,
		CaptionStyle:   StyleCaption,
		TitleJustify:   JustifyCenter,
		CaptionJustify: JustifyCenter,
	}
}

func resolveOptions(sets ...[]Option) Options {
	o := DefaultOptions()
	for _, set := range sets {
		for _, opt := range set {
			opt(&o)
		}
	}
	return o
}

func (o Options) styler() Styler {
	if o.Styler == nil {
		return PlainStyler
	}
	return o.Styler
}

func (o Options) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// Title sets the text above the table.
func Title(s string) Option { return func(o *Options) { o.Title = s } }

// Caption sets the text below the table.
func Caption(s string) Option { return func(o *Options) { o.Caption = s } }

// Width fixes the total table width. Columns are widened or narrowed to fit.
func Width(n int) Option { return func(o *Options) { o.Width = n } }

// MinWidth sets the smallest total table width.
func MinWidth(n int) Option { return func(o *Options) { o.MinWidth = n } }

// WithBox sets the border characters.
func WithBox(b BoxStyle) Option { return func(o *Options) { o.Box = b } }

// SafeBox restricts borders to ASCII characters.
func SafeBox(v bool) Option { return func(o *Options) { o.SafeBox = v } }

// WithPadding sets the cell padding.
func WithPadding(p Padding) Option { return func(o *Options) { o.Padding = p } }

// CollapsePadding merges the right padding of a cell with the left padding
// of its neighbor.
func CollapsePadding(v bool) Option { return func(o *Options) { o.CollapsePadding = v } }

// PadEdge controls padding on the outer side of the first and last columns.
func PadEdge(v bool) Option { return func(o *Options) { o.PadEdge = v } }

// Expand widens the table to [Width] even when the content is narrower.
func Expand(v bool) Option { return func(o *Options) { o.Expand = v } }

// ShowHeader controls the header row (or, transposed, the header column).
func ShowHeader(v bool) Option { return func(o *Options) { o.ShowHeader = v } }

// ShowFooter controls the footer row (or, transposed, the footer column).
func ShowFooter(v bool) Option { return func(o *Options) { o.ShowFooter = v } }

// ShowEdge controls the outer border.
func ShowEdge(v bool) Option { return func(o *Options) { o.ShowEdge = v } }

// ShowLines draws a separator between every pair of rows.
func ShowLines(v bool) Option { return func(o *Options) { o.ShowLines = v } }

// Leading inserts n blank lines between rows.
func Leading(n int) Option { return func(o *Options) { o.Leading = n } }

// TableStyle sets the base style of every cell.
func TableStyle(s Style) Option { return func(o *Options) { o.Style = s } }

// RowStyles sets styles applied to rows in rotation, e.g. for zebra stripes.
func RowStyles(styles ...Style) Option {
	return func(o *Options) { o.RowStyles = append([]Style(nil), styles...) }
}

// HeaderStyle sets the default header style.
func HeaderStyle(s Style) Option { return func(o *Options) { o.HeaderStyle = s } }

// FooterStyle sets the default footer style.
func FooterStyle(s Style) Option { return func(o *Options) { o.FooterStyle = s } }

// BorderStyle sets the style of the border characters.
func BorderStyle(s Style) Option { return func(o *Options) { o.BorderStyle = s } }

// TitleStyle sets the style of the title.
func TitleStyle(s Style) Option { return func(o *Options) { o.TitleStyle = s } }

// CaptionStyle sets the style of the caption.
func CaptionStyle(s Style) Option { return func(o *Options) { o.CaptionStyle = s } }

// TitleJustify sets the alignment of the title.
func TitleJustify(j Justify) Option { return func(o *Options) { o.TitleJustify = j } }

// CaptionJustify sets the alignment of the caption.
func CaptionJustify(j Justify) Option { return func(o *Options) { o.CaptionJustify = j } }

// Highlight styles unstyled cells that look like numbers or booleans.
func Highlight(v bool) Option { return func(o *Options) { o.Highlight = v } }

// PageSize repeats the header every n rows.
func PageSize(n int) Option { return func(o *Options) { o.PageSize = n } }

// WithStyler sets how styles are rendered, e.g. [ANSIStyler].
func WithStyler(s Styler) Option { return func(o *Options) { o.Styler = s } }

// Transposed lays fields out as rows and records as columns.
func Transposed(v bool) Option { return func(o *Options) { o.Transposed = v } }

// WithLogger sets the logger builds report to. The default discards.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.logger = l } }

// sectioner groups records by a key. Keys are compared with cmp.Compare.
type sectioner struct {
	key     func(any) any
	compare func(a, b any) int
}

// SectionBy groups rows of a normal-orientation table by key. Records are
// stably sorted by key and a section break separates rows whose keys
// differ. Transposed tables ignore it. A nil key function clears sectioning.
func SectionBy[K cmp.Ordered](key func(record any) K) Option {
	return func(o *Options) {
		if key == nil {
			o.section = nil
			return
		}
		o.section = &sectioner{
			key:     func(r any) any { return key(r) },
			compare: func(a, b any) int { return cmp.Compare(a.(K), b.(K)) },
		}
	}
}

// SectionByPath groups rows by the string form of the value at p. Records
// without a value share the empty key.
func SectionByPath(p Path) Option {
	return SectionBy(func(r any) string {
		v, ok := p.Lookup(r)
		if !ok || v == nil {
			return ""
		}
		c, err := Stringify(v)
		if err != nil {
			return ""
		}
		return c.Text
	})
}
