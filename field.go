package tablebuilder

import (
	"fmt"
	"reflect"
)

// GetterFunc extracts one value from a record. def is the field's default,
// which the getter may return when the record has no value.
type GetterFunc func(record, def any) (any, error)

// Reducer folds every extracted value of a column into one, for computed
// headers and footers such as totals.
type Reducer func(values []any) (any, error)

// Formatter renders a single extracted value.
type Formatter func(v any) (Cell, error)

// Typed adapts a function over a concrete record type into a getter.
// Records of any other type produce an [ErrRecordType] error.
func Typed[T any, V any](fn func(T) V) GetterFunc {
	return func(record, _ any) (any, error) {
		t, ok := record.(T)
		if !ok {
			return nil, fmt.Errorf("%w: got %T, want %s", ErrRecordType, record, reflect.TypeFor[T]())
		}
		return fn(t), nil
	}
}

// InvalidKeyTypeError reports a field key that is neither nil, a string, a
// [Path] nor a getter function.
type InvalidKeyTypeError struct {
	Field string
	Type  reflect.Type
}

func (e *InvalidKeyTypeError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", ErrInvalidKeyType, e.Field, e.Type)
}

func (e *InvalidKeyTypeError) Unwrap() error { return ErrInvalidKeyType }

// headerSpec is either a literal cell or a reducer over the column values.
type headerSpec struct {
	literal Cell
	reduce  Reducer
}

// toHeaderSpec accepts a reducer or a literal. Functions of any other
// signature are rejected rather than printed.
func toHeaderSpec(v any) (headerSpec, error) {
	switch h := v.(type) {
	case nil:
		return headerSpec{}, nil
	case Reducer:
		return headerSpec{reduce: h}, nil
	case func([]any) (any, error):
		return headerSpec{reduce: h}, nil
	case func([]any) any:
		return headerSpec{reduce: func(values []any) (any, error) { return h(values), nil }}, nil
	case Cell:
		return headerSpec{literal: h}, nil
	case string:
		return headerSpec{literal: Text(h)}, nil
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return headerSpec{}, fmt.Errorf("%w: %T", ErrInvalidHeader, v)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return headerSpec{literal: Text(s.String())}, nil
	}
	return headerSpec{literal: Text(fmt.Sprint(v))}, nil
}

// Field declares how one column (or, transposed, one row) is derived from
// the records: where its values come from, how they are formatted, and what
// goes in its header and footer. A Field is immutable once created and can
// be shared by any number of specs and builds.
type Field struct {
	name        string
	header      headerSpec
	footer      headerSpec
	getter      GetterFunc
	def         any
	formatter   Formatter
	style       Style
	headerStyle Style
	footerStyle Style
	justify     Justify
	maxWidth    int
	wrap        bool
}

type fieldConfig struct {
	key         any
	footer      any
	def         any
	formatter   Formatter
	style       Style
	headerStyle Style
	footerStyle Style
	justify     Justify
	maxWidth    int
	wrap        bool
	required    bool
}

// FieldOption configures a [Field].
type FieldOption func(*fieldConfig)

// WithKey sets how values are extracted from records. k may be nil (the
// record itself), a string (a map key), a [Path], a [GetterFunc], or a
// func(record, def any) (any, error), func(record, def any) any or
// func(record any) any. Any other type makes [NewField] fail.
func WithKey(k any) FieldOption { return func(c *fieldConfig) { c.key = k } }

// WithFooter sets the footer: a literal shown as is, or a reducer
// (a [Reducer], func([]any) any or func([]any) (any, error)) whose result
// is passed through the field's formatter.
func WithFooter(v any) FieldOption { return func(c *fieldConfig) { c.footer = v } }

// WithDefault sets the value used when a record has none.
func WithDefault(v any) FieldOption { return func(c *fieldConfig) { c.def = v } }

// WithFormatter sets the value formatter. The default is [Stringify].
func WithFormatter(f Formatter) FieldOption { return func(c *fieldConfig) { c.formatter = f } }

// WithStyle sets the style of the field's values.
func WithStyle(s Style) FieldOption { return func(c *fieldConfig) { c.style = s } }

// WithHeaderStyle sets the style of the field's header.
func WithHeaderStyle(s Style) FieldOption { return func(c *fieldConfig) { c.headerStyle = s } }

// WithFooterStyle sets the style of the field's footer.
func WithFooterStyle(s Style) FieldOption { return func(c *fieldConfig) { c.footerStyle = s } }

// WithJustify sets the alignment of the field's cells.
func WithJustify(j Justify) FieldOption { return func(c *fieldConfig) { c.justify = j } }

// WithMaxWidth caps the rendered width of the field's column. Longer cells
// are truncated with "..." unless [WithWrap] is set.
func WithMaxWidth(n int) FieldOption { return func(c *fieldConfig) { c.maxWidth = n } }

// WithWrap wraps cells longer than the max width onto several lines.
func WithWrap() FieldOption { return func(c *fieldConfig) { c.wrap = true } }

// Required makes a missing path an error instead of falling back to the
// default. It only affects keys given as a string or a [Path].
func Required() FieldOption { return func(c *fieldConfig) { c.required = true } }

// NewField declares a field. header is a literal or a reducer, like the
// footer (see [WithFooter]). The key is validated here, so an unsupported key
// type fails at declaration rather than at build time.
func NewField(name string, header any, opts ...FieldOption) (*Field, error) {
	if name == "" {
		return nil, ErrEmptyFieldName
	}
	var c fieldConfig
	for _, opt := range opts {
		opt(&c)
	}
	getter, err := toGetter(c.key, c.required)
	if err != nil {
		if ik, ok := err.(*InvalidKeyTypeError); ok {
			ik.Field = name
		}
		return nil, err
	}
	hs, err := toHeaderSpec(header)
	if err != nil {
		return nil, fmt.Errorf("field %q: header: %w", name, err)
	}
	fs, err := toHeaderSpec(c.footer)
	if err != nil {
		return nil, fmt.Errorf("field %q: footer: %w", name, err)
	}
	formatter := c.formatter
	if formatter == nil {
		formatter = Stringify
	}
	return &Field{
		name:        name,
		header:      hs,
		footer:      fs,
		getter:      getter,
		def:         c.def,
		formatter:   formatter,
		style:       c.style,
		headerStyle: c.headerStyle,
		footerStyle: c.footerStyle,
		justify:     c.justify,
		maxWidth:    c.maxWidth,
		wrap:        c.wrap,
	}, nil
}

// MustField is like [NewField] but panics on error. It suits package-level
// table declarations.
func MustField(name string, header any, opts ...FieldOption) *Field {
	f, err := NewField(name, header, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func toGetter(k any, required bool) (GetterFunc, error) {
	switch g := k.(type) {
	case nil:
		return pathGetter(Obj, required), nil
	case string:
		return pathGetter(Obj.Key(g), required), nil
	case Path:
		return pathGetter(g, required), nil
	case GetterFunc:
		return g, nil
	case func(any, any) (any, error):
		return g, nil
	case func(any, any) any:
		return func(record, def any) (any, error) { return g(record, def), nil }, nil
	case func(any) any:
		return func(record, _ any) (any, error) { return g(record), nil }, nil
	default:
		return nil, &InvalidKeyTypeError{Type: reflect.TypeOf(k)}
	}
}

func pathGetter(p Path, required bool) GetterFunc {
	if required {
		return p.strictGetter()
	}
	return p.Getter()
}

// Name returns the field's name.
func (f *Field) Name() string { return f.name }

// Justify returns the field's alignment.
func (f *Field) Justify() Justify { return f.justify }

// Style returns the style of the field's values.
func (f *Field) Style() Style { return f.style }

// Values extracts the field's value from every record, in order. A nil
// value, typed or not, is replaced by the field default.
func (f *Field) Values(records []any) ([]any, error) {
	values := make([]any, len(records))
	for i, r := range records {
		v, err := f.getter(r, f.def)
		if err != nil {
			return nil, fmt.Errorf("field %q: record %d: %w", f.name, i, err)
		}
		if isNil(v) {
			v = f.def
		}
		values[i] = v
	}
	return values, nil
}

// Header computes the header from the extracted values. A literal header is
// returned unformatted; a reduced one goes through the formatter. With
// applyStyle the result is wrapped in the field's header style, or def when
// the field has none.
func (f *Field) Header(values []any, applyStyle bool, def Style) (Cell, error) {
	c, err := f.reduceAndFormat(f.header, values)
	if err != nil {
		return Cell{}, fmt.Errorf("field %q: header: %w", f.name, err)
	}
	if applyStyle {
		c = c.WithStyle(f.headerStyle.Or(def))
	}
	return c, nil
}

// Footer computes the footer the same way [Field.Header] computes the header.
func (f *Field) Footer(values []any, applyStyle bool, def Style) (Cell, error) {
	c, err := f.reduceAndFormat(f.footer, values)
	if err != nil {
		return Cell{}, fmt.Errorf("field %q: footer: %w", f.name, err)
	}
	if applyStyle {
		c = c.WithStyle(f.footerStyle.Or(def))
	}
	return c, nil
}

func (f *Field) reduceAndFormat(h headerSpec, values []any) (Cell, error) {
	if h.reduce == nil {
		return h.literal, nil
	}
	v, err := h.reduce(values)
	if err != nil {
		return Cell{}, err
	}
	if isNil(v) {
		return Cell{}, nil
	}
	return f.formatter(v)
}

// Format renders one value. nil, including a nil pointer, map or slice,
// renders as an empty cell without calling the formatter. With applyStyle
// the cell is wrapped in the field's style, or def when the field has none.
func (f *Field) Format(v any, applyStyle bool, def Style) (Cell, error) {
	var c Cell
	if !isNil(v) {
		var err error
		c, err = f.formatter(v)
		if err != nil {
			return Cell{}, fmt.Errorf("field %q: format: %w", f.name, err)
		}
	}
	if applyStyle {
		c = c.WithStyle(f.style.Or(def))
	}
	return c, nil
}

// Column describes the field as a column of a normal-orientation table.
func (f *Field) Column(header, footer Cell) Column {
	return Column{
		Header:      header,
		Footer:      footer,
		Justify:     f.justify,
		Style:       f.style,
		HeaderStyle: f.headerStyle,
		FooterStyle: f.footerStyle,
		MaxWidth:    f.maxWidth,
		Wrap:        f.wrap,
	}
}
