package tablebuilder

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Stringify is the default [Formatter]. Cells pass through unchanged,
// strings, Stringers and errors render as their text, floats in their
// shortest exact form, and everything else with fmt.Sprint.
func Stringify(v any) (Cell, error) {
	switch x := v.(type) {
	case nil:
		return Cell{}, nil
	case Cell:
		return x, nil
	case string:
		return Text(x), nil
	case fmt.Stringer:
		return Text(x.String()), nil
	case error:
		return Text(x.Error()), nil
	case float64:
		return Text(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case float32:
		return Text(strconv.FormatFloat(float64(x), 'f', -1, 32)), nil
	default:
		return Text(fmt.Sprint(x)), nil
	}
}

// StringFunc adapts a plain string function to [Formatter].
func StringFunc(fn func(any) string) Formatter {
	return func(v any) (Cell, error) { return Text(fn(v)), nil }
}

// Sprintf returns a formatter rendering values with fmt.Sprintf(format, v).
func Sprintf(format string) Formatter {
	return func(v any) (Cell, error) { return Text(fmt.Sprintf(format, v)), nil }
}

// Number returns a formatter rendering numbers with the digit grouping of
// tag and exactly places fraction digits. A negative places keeps the
// value's own precision. Non-numeric values are an error.
func Number(tag language.Tag, places int) Formatter {
	return func(v any) (Cell, error) {
		d, _, err := toDecimal(v)
		if err != nil {
			return Cell{}, err
		}
		var opts []number.Option
		if places >= 0 {
			opts = append(opts, number.Scale(places))
		}
		p := message.NewPrinter(tag)
		return Text(p.Sprint(number.Decimal(d.InexactFloat64(), opts...))), nil
	}
}

// Currency returns a formatter rendering numbers as symbol followed by the
// amount with places fraction digits. Negative amounts are shown in
// parentheses and styled red. Non-numeric values are an error.
func Currency(symbol string, places int32) Formatter {
	return func(v any) (Cell, error) {
		d, _, err := toDecimal(v)
		if err != nil {
			return Cell{}, err
		}
		if d.IsNegative() {
			return Styled("("+symbol+d.Neg().StringFixed(places)+")", "red"), nil
		}
		return Text(symbol + d.StringFixed(places)), nil
	}
}

// Template returns a formatter executing a text/template with the value as
// dot.
func Template(tmpl string) (Formatter, error) {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return func(v any) (Cell, error) {
		var sb strings.Builder
		if err := t.Execute(&sb, v); err != nil {
			return Cell{}, err
		}
		return Text(sb.String()), nil
	}, nil
}
