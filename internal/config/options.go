package config

import (
	"fmt"

	"github.com/bjaus/tablebuilder"
)

// Options mirrors [tablebuilder.Options]. Unset fields keep the library
// defaults; pointers distinguish false from unset where the default is
// true.
type Options struct {
	Title           string                `yaml:"title"`
	Caption         string                `yaml:"caption"`
	Width           int                   `yaml:"width"`
	MinWidth        int                   `yaml:"min_width"`
	Box             string                `yaml:"box"`
	SafeBox         bool                  `yaml:"safe_box"`
	Padding         *tablebuilder.Padding `yaml:"padding"`
	CollapsePadding bool                  `yaml:"collapse_padding"`
	PadEdge         *bool                 `yaml:"pad_edge"`
	Expand          bool                  `yaml:"expand"`
	ShowHeader      *bool                 `yaml:"show_header"`
	ShowFooter      bool                  `yaml:"show_footer"`
	ShowEdge        *bool                 `yaml:"show_edge"`
	ShowLines       bool                  `yaml:"show_lines"`
	Leading         int                   `yaml:"leading"`
	Style           string                `yaml:"style"`
	RowStyles       []string              `yaml:"row_styles"`
	HeaderStyle     string                `yaml:"header_style"`
	FooterStyle     string                `yaml:"footer_style"`
	BorderStyle     string                `yaml:"border_style"`
	TitleStyle      string                `yaml:"title_style"`
	CaptionStyle    string                `yaml:"caption_style"`
	TitleJustify    string                `yaml:"title_justify"`
	CaptionJustify  string                `yaml:"caption_justify"`
	Highlight       bool                  `yaml:"highlight"`
	PageSize        int                   `yaml:"page_size"`
}

// BuildOptions returns the build options the definition declares,
// including orientation and sectioning.
func (c *Config) BuildOptions() ([]tablebuilder.Option, error) {
	o := c.Options
	// Zero values are left out so they do not clear options set in code.
	var opts []tablebuilder.Option
	if o.Title != "" {
		opts = append(opts, tablebuilder.Title(o.Title))
	}
	if o.Caption != "" {
		opts = append(opts, tablebuilder.Caption(o.Caption))
	}
	if o.Width != 0 {
		opts = append(opts, tablebuilder.Width(o.Width))
	}
	if o.MinWidth != 0 {
		opts = append(opts, tablebuilder.MinWidth(o.MinWidth))
	}
	if o.Leading != 0 {
		opts = append(opts, tablebuilder.Leading(o.Leading))
	}
	if o.PageSize != 0 {
		opts = append(opts, tablebuilder.PageSize(o.PageSize))
	}
	for _, flag := range []struct {
		set bool
		opt func(bool) tablebuilder.Option
	}{
		{o.SafeBox, tablebuilder.SafeBox},
		{o.CollapsePadding, tablebuilder.CollapsePadding},
		{o.Expand, tablebuilder.Expand},
		{o.ShowFooter, tablebuilder.ShowFooter},
		{o.ShowLines, tablebuilder.ShowLines},
		{o.Highlight, tablebuilder.Highlight},
		{c.Transposed, tablebuilder.Transposed},
	} {
		if flag.set {
			opts = append(opts, flag.opt(true))
		}
	}

	if o.Box != "" {
		b, err := tablebuilder.ParseBoxStyle(o.Box)
		if err != nil {
			return nil, fmt.Errorf("options.box: %w", err)
		}
		opts = append(opts, tablebuilder.WithBox(b))
	}
	if o.Padding != nil {
		opts = append(opts, tablebuilder.WithPadding(*o.Padding))
	}
	if o.PadEdge != nil {
		opts = append(opts, tablebuilder.PadEdge(*o.PadEdge))
	}
	if o.ShowHeader != nil {
		opts = append(opts, tablebuilder.ShowHeader(*o.ShowHeader))
	}
	if o.ShowEdge != nil {
		opts = append(opts, tablebuilder.ShowEdge(*o.ShowEdge))
	}

	styles := []struct {
		value string
		set   func(tablebuilder.Style) tablebuilder.Option
	}{
		{o.Style, tablebuilder.TableStyle},
		{o.HeaderStyle, tablebuilder.HeaderStyle},
		{o.FooterStyle, tablebuilder.FooterStyle},
		{o.BorderStyle, tablebuilder.BorderStyle},
		{o.TitleStyle, tablebuilder.TitleStyle},
		{o.CaptionStyle, tablebuilder.CaptionStyle},
	}
	for _, s := range styles {
		if s.value != "" {
			opts = append(opts, s.set(tablebuilder.Style(s.value)))
		}
	}
	if len(o.RowStyles) > 0 {
		rs := make([]tablebuilder.Style, len(o.RowStyles))
		for i, s := range o.RowStyles {
			rs[i] = tablebuilder.Style(s)
		}
		opts = append(opts, tablebuilder.RowStyles(rs...))
	}

	if o.TitleJustify != "" {
		j, err := tablebuilder.ParseJustify(o.TitleJustify)
		if err != nil {
			return nil, fmt.Errorf("options.title_justify: %w", err)
		}
		opts = append(opts, tablebuilder.TitleJustify(j))
	}
	if o.CaptionJustify != "" {
		j, err := tablebuilder.ParseJustify(o.CaptionJustify)
		if err != nil {
			return nil, fmt.Errorf("options.caption_justify: %w", err)
		}
		opts = append(opts, tablebuilder.CaptionJustify(j))
	}

	if c.SectionBy != "" {
		p, err := tablebuilder.ParsePath(c.SectionBy)
		if err != nil {
			return nil, fmt.Errorf("section_by: %w", err)
		}
		opts = append(opts, tablebuilder.SectionByPath(p))
	}
	return opts, nil
}
