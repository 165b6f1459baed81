package tablebuilder

import (
	"fmt"
	"iter"
)

// Spec is an ordered set of fields describing a table type. The order the
// fields are given in is the column order of normal tables and the row
// order of transposed ones. A Spec never changes after creation and may be
// shared freely.
type Spec struct {
	fields []*Field
	index  map[string]int
}

// NewSpec declares a table type from fields, in order. Field names must be
// unique.
func NewSpec(fields ...*Field) (*Spec, error) {
	s := &Spec{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if err := s.add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSpec is like [NewSpec] but panics on error.
func MustSpec(fields ...*Field) *Spec {
	s, err := NewSpec(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Spec) add(f *Field) error {
	if f == nil {
		return fmt.Errorf("%w: nil field at position %d", ErrEmptyFieldName, len(s.fields))
	}
	if _, dup := s.index[f.name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateField, f.name)
	}
	s.index[f.name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// With returns a new spec with fields appended after the existing ones.
func (s *Spec) With(fields ...*Field) (*Spec, error) {
	return NewSpec(append(s.Fields(), fields...)...)
}

// Fields returns the fields in declaration order.
func (s *Spec) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the field called name.
func (s *Spec) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Len returns the number of fields.
func (s *Spec) Len() int { return len(s.fields) }

// Builder returns a reusable builder whose options override the defaults.
func (s *Spec) Builder(opts ...Option) *Builder {
	return &Builder{spec: s, opts: append([]Option(nil), opts...)}
}

// Build is a one-shot [Spec.Builder] followed by [Builder.Build].
func (s *Spec) Build(records []any, opts ...Option) (*Table, error) {
	return s.Builder(opts...).Build(records)
}

// Builder applies a [Spec] to records. It holds construction-time options
// and is safe to call repeatedly and concurrently.
type Builder struct {
	spec *Spec
	opts []Option
}

// Spec returns the spec the builder applies.
func (b *Builder) Spec() *Spec { return b.spec }

// Build assembles a table from records. opts override the builder's
// options for this call only. Either a complete table or an error is
// returned.
func (b *Builder) Build(records []any, opts ...Option) (*Table, error) {
	o := resolveOptions(b.opts, opts)
	var (
		t   *Table
		err error
	)
	if o.Transposed {
		t, err = b.spec.assembleTransposed(records, o)
	} else {
		t, err = b.spec.assembleNormal(records, o)
	}
	if err != nil {
		return nil, err
	}
	o.log().Debug("built table",
		"fields", b.spec.Len(),
		"records", len(records),
		"transposed", t.Transposed,
		"sections", len(t.Sections)+min(len(t.Rows), 1),
	)
	return t, nil
}

// Records converts a typed slice into the []any that [Builder.Build] takes.
func Records[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// BuildSeq collects records from seq and builds a table from them.
func BuildSeq[T any](b *Builder, seq iter.Seq[T], opts ...Option) (*Table, error) {
	var records []any
	for item := range seq {
		records = append(records, item)
	}
	return b.Build(records, opts...)
}

// BuildChan collects records from ch until it is closed and builds a table
// from them. It is a thin wrapper around [BuildSeq].
func BuildChan[T any](b *Builder, ch <-chan T, opts ...Option) (*Table, error) {
	return BuildSeq(b, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
