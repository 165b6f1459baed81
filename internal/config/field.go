package config

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/bjaus/tablebuilder"
)

// Field declares one column. The value comes from Key (a map key) or Path
// (the textual form of a path, e.g. Obj["a"].b), defaulting to the field
// name.
type Field struct {
	Name         string `yaml:"name"`
	Header       string `yaml:"header"`
	HeaderReduce string `yaml:"header_reduce"`
	Key          string `yaml:"key"`
	Path         string `yaml:"path"`
	Default      any    `yaml:"default"`
	Footer       string `yaml:"footer"`
	FooterReduce string `yaml:"footer_reduce"`
	Separator    string `yaml:"separator"`
	Required     bool   `yaml:"required"`

	Format  string `yaml:"format"`
	Pattern string `yaml:"pattern"`
	Symbol  string `yaml:"symbol"`
	Locale  string `yaml:"locale"`
	Places  *int   `yaml:"places"`

	Style       string `yaml:"style"`
	HeaderStyle string `yaml:"header_style"`
	FooterStyle string `yaml:"footer_style"`
	Justify     string `yaml:"justify"`
	MaxWidth    int    `yaml:"max_width"`
	Wrap        bool   `yaml:"wrap"`
}

func (f Field) build() (*tablebuilder.Field, error) {
	var opts []tablebuilder.FieldOption

	switch {
	case f.Path != "":
		p, err := tablebuilder.ParsePath(f.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tablebuilder.WithKey(p))
	case f.Key != "":
		opts = append(opts, tablebuilder.WithKey(f.Key))
	default:
		opts = append(opts, tablebuilder.WithKey(f.Name))
	}

	var header any = f.Header
	if f.HeaderReduce != "" {
		r, err := reducer(f.HeaderReduce, f.Separator)
		if err != nil {
			return nil, fmt.Errorf("header_reduce: %w", err)
		}
		header = r
	} else if f.Header == "" {
		header = f.Name
	}

	switch {
	case f.FooterReduce != "":
		r, err := reducer(f.FooterReduce, f.Separator)
		if err != nil {
			return nil, fmt.Errorf("footer_reduce: %w", err)
		}
		opts = append(opts, tablebuilder.WithFooter(r))
	case f.Footer != "":
		opts = append(opts, tablebuilder.WithFooter(f.Footer))
	}

	if f.Default != nil {
		opts = append(opts, tablebuilder.WithDefault(f.Default))
	}
	if f.Required {
		opts = append(opts, tablebuilder.Required())
	}

	formatter, err := f.formatter()
	if err != nil {
		return nil, err
	}
	if formatter != nil {
		opts = append(opts, tablebuilder.WithFormatter(formatter))
	}

	if f.Justify != "" {
		j, err := tablebuilder.ParseJustify(f.Justify)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tablebuilder.WithJustify(j))
	}
	opts = append(opts,
		tablebuilder.WithStyle(tablebuilder.Style(f.Style)),
		tablebuilder.WithHeaderStyle(tablebuilder.Style(f.HeaderStyle)),
		tablebuilder.WithFooterStyle(tablebuilder.Style(f.FooterStyle)),
		tablebuilder.WithMaxWidth(f.MaxWidth),
	)
	if f.Wrap {
		opts = append(opts, tablebuilder.WithWrap())
	}

	return tablebuilder.NewField(f.Name, header, opts...)
}

func (f Field) places(def int) int {
	if f.Places == nil {
		return def
	}
	return *f.Places
}

func (f Field) formatter() (tablebuilder.Formatter, error) {
	switch f.Format {
	case "", "string":
		return nil, nil
	case "sprintf":
		if f.Pattern == "" {
			return nil, fmt.Errorf("format sprintf needs a pattern")
		}
		return tablebuilder.Sprintf(f.Pattern), nil
	case "template":
		return tablebuilder.Template(f.Pattern)
	case "number":
		tag := language.English
		if f.Locale != "" {
			t, err := language.Parse(f.Locale)
			if err != nil {
				return nil, fmt.Errorf("locale %q: %w", f.Locale, err)
			}
			tag = t
		}
		return tablebuilder.Number(tag, f.places(0)), nil
	case "currency":
		symbol := f.Symbol
		if symbol == "" {
			symbol = "$"
		}
		return tablebuilder.Currency(symbol, int32(f.places(2))), nil
	case "rainbow":
		return tablebuilder.RainbowByValue().Format, nil
	default:
		return nil, fmt.Errorf("unknown format %q", f.Format)
	}
}

func reducer(name, sep string) (tablebuilder.Reducer, error) {
	switch name {
	case "sum":
		return tablebuilder.Sum, nil
	case "count":
		return tablebuilder.Count, nil
	case "mean", "avg":
		return tablebuilder.Mean, nil
	case "min":
		return tablebuilder.Min, nil
	case "max":
		return tablebuilder.Max, nil
	case "join":
		if sep == "" {
			sep = ", "
		}
		return tablebuilder.Join(sep), nil
	default:
		return nil, fmt.Errorf("unknown reducer %q", name)
	}
}
