package tablebuilder

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type stepKind uint8

const (
	keyStep stepKind = iota
	attrStep
)

type step struct {
	kind stepKind
	key  any
	name string
}

// Path is an immutable chain of key and attribute lookups followed by
// optional transforms. Paths are built from [Obj]:
//
//	price := tablebuilder.Obj.Key("cart").Key("items").Key(0).Attr("Price")
//
// Every builder method returns a new Path; the receiver is never modified,
// so a shared prefix can safely be extended in several directions.
type Path struct {
	steps      []step
	transforms []func(any) any
}

// Obj is the identity path. Resolving it returns its input unchanged.
var Obj Path

// Key returns a path that additionally indexes the current value with k.
// Maps are looked up by key, slices, arrays and strings by integer index
// (negative indexes count from the end). Transforms of p are not carried over.
func (p Path) Key(k any) Path {
	return Path{steps: appendStep(p.steps, step{kind: keyStep, key: k})}
}

// Attr returns a path that additionally reads the member called name: an
// exported struct field or a method taking no arguments. On maps keyed by
// strings, Attr looks up the key, the way text/template treats .Name.
// Transforms of p are not carried over.
func (p Path) Attr(name string) Path {
	return Path{steps: appendStep(p.steps, step{kind: attrStep, name: name})}
}

// Apply returns a path that runs f on the resolved value after the existing
// transforms. Transforms never run on defaults.
func (p Path) Apply(f func(any) any) Path {
	ts := make([]func(any) any, len(p.transforms), len(p.transforms)+1)
	copy(ts, p.transforms)
	return Path{steps: p.steps, transforms: append(ts, f)}
}

// Len returns the number of lookup steps.
func (p Path) Len() int { return len(p.steps) }

func appendStep(steps []step, s step) []step {
	out := make([]step, len(steps), len(steps)+1)
	copy(out, steps)
	return append(out, s)
}

// Lookup walks the path over obj. It reports false when any step fails.
func (p Path) Lookup(obj any) (any, bool) {
	cur := obj
	for _, s := range p.steps {
		var ok bool
		if s.kind == keyStep {
			cur, ok = lookupKey(cur, s.key)
		} else {
			cur, ok = lookupAttr(cur, s.name)
		}
		if !ok {
			// A missing value stays missing through the remaining steps.
			return nil, false
		}
	}
	for _, t := range p.transforms {
		cur = t(cur)
	}
	return cur, true
}

// Resolve walks the path over obj and returns a [*MissingPathError] when a
// step fails.
func (p Path) Resolve(obj any) (any, error) {
	v, ok := p.Lookup(obj)
	if !ok {
		return nil, &MissingPathError{Path: p}
	}
	return v, nil
}

// ResolveOr walks the path over obj and returns def when a step fails.
func (p Path) ResolveOr(obj, def any) any {
	v, ok := p.Lookup(obj)
	if !ok {
		return def
	}
	return v
}

// Getter adapts p to the field getter contract, falling back to the
// field's default on a missing value.
func (p Path) Getter() GetterFunc {
	return func(record, def any) (any, error) {
		return p.ResolveOr(record, def), nil
	}
}

func (p Path) strictGetter() GetterFunc {
	return func(record, _ any) (any, error) {
		return p.Resolve(record)
	}
}

// String renders the path as Obj followed by .attr and [key] segments.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("Obj")
	for _, s := range p.steps {
		if s.kind == attrStep {
			b.WriteByte('.')
			b.WriteString(s.name)
			continue
		}
		b.WriteByte('[')
		b.WriteString(formatKey(s.key))
		b.WriteByte(']')
	}
	return b.String()
}

func formatKey(k any) string {
	if k == nil {
		return "nil"
	}
	if reflect.TypeOf(k).Kind() == reflect.String {
		return strconv.Quote(reflect.ValueOf(k).String())
	}
	return fmt.Sprint(k)
}

// MissingPathError reports a path that resolved to nothing and had no
// default to fall back on.
type MissingPathError struct {
	Path Path
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingPath, e.Path)
}

func (e *MissingPathError) Unwrap() error { return ErrMissingPath }

// --- lookups ---

func lookupKey(v, key any) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		s, ok := key.(string)
		if !ok {
			return nil, false
		}
		r, ok := c[s]
		return r, ok
	case []any:
		i, ok := toIndex(key, len(c))
		if !ok {
			return nil, false
		}
		return c[i], true
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		kv, ok := convertKey(key, rv.Type().Key())
		if !ok {
			return nil, false
		}
		r := rv.MapIndex(kv)
		if !r.IsValid() {
			return nil, false
		}
		return r.Interface(), true
	case reflect.Slice, reflect.Array:
		i, ok := toIndex(key, rv.Len())
		if !ok {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.String:
		runes := []rune(rv.String())
		i, ok := toIndex(key, len(runes))
		if !ok {
			return nil, false
		}
		return string(runes[i]), true
	default:
		return nil, false
	}
}

func lookupAttr(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || name == "" {
		return nil, false
	}
	// Methods with value receivers panic when called through a nil pointer.
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return callMethod(m)
	}
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Struct:
		if sf, ok := rv.Type().FieldByName(name); ok && sf.IsExported() {
			f, err := rv.FieldByIndexErr(sf.Index)
			if err != nil {
				return nil, false
			}
			return f.Interface(), true
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return lookupKey(rv.Interface(), name)
		}
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return callMethod(m)
	}
	return nil, false
}

var errorType = reflect.TypeFor[error]()

func callMethod(m reflect.Value) (any, bool) {
	t := m.Type()
	if t.NumIn() != 0 {
		return nil, false
	}
	switch t.NumOut() {
	case 1:
		return m.Call(nil)[0].Interface(), true
	case 2:
		if !t.Out(1).Implements(errorType) {
			return nil, false
		}
		out := m.Call(nil)
		if !out[1].IsNil() {
			return nil, false
		}
		return out[0].Interface(), true
	default:
		return nil, false
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// isNil reports whether v is nil or holds a nil pointer, map, slice,
// interface, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func convertKey(key any, kt reflect.Type) (reflect.Value, bool) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		return reflect.Value{}, false
	}
	if kv.Type().AssignableTo(kt) {
		return kv, true
	}
	switch {
	case isInt(kv.Kind()) && isInt(kt.Kind()),
		kv.Kind() == reflect.String && kt.Kind() == reflect.String:
		return kv.Convert(kt), true
	}
	return reflect.Value{}, false
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toIndex(key any, n int) (int, bool) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !isInt(kv.Kind()) {
		return 0, false
	}
	var i int
	if kv.CanInt() {
		i = int(kv.Int())
	} else {
		u := kv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		i = int(u)
	}
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// --- parsing ---

// ParsePath parses the textual form produced by [Path.String]. The leading
// "Obj" is optional and a bare leading name is read as an attribute, so
// "contact.address", "Obj.contact.address" and `Obj["contact"]["address"]`
// all parse. Supported segments are .name, [int], ["key"] and ['key'].
func ParsePath(s string) (Path, error) {
	p := Obj
	src := strings.TrimSpace(s)
	rest := src
	if after, ok := strings.CutPrefix(rest, "Obj"); ok && (after == "" || after[0] == '.' || after[0] == '[') {
		rest = after
	}
	for first := true; rest != ""; first = false {
		offset := len(src) - len(rest)
		switch {
		case rest[0] == '.':
			name, n := scanIdent(rest[1:])
			if name == "" {
				return Path{}, fmt.Errorf("%w: %q at offset %d: expected name after '.'", ErrInvalidPath, s, offset)
			}
			p = p.Attr(name)
			rest = rest[1+n:]
		case rest[0] == '[':
			key, n, err := scanKey(rest)
			if err != nil {
				return Path{}, fmt.Errorf("%w: %q at offset %d: %s", ErrInvalidPath, s, offset, err)
			}
			p = p.Key(key)
			rest = rest[n:]
		case first:
			name, n := scanIdent(rest)
			if name == "" {
				return Path{}, fmt.Errorf("%w: %q at offset %d: unexpected %q", ErrInvalidPath, s, offset, rest[0])
			}
			p = p.Attr(name)
			rest = rest[n:]
		default:
			return Path{}, fmt.Errorf("%w: %q at offset %d: unexpected %q", ErrInvalidPath, s, offset, rest[0])
		}
	}
	return p, nil
}

func scanIdent(s string) (string, int) {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return s[:n], n
}

// scanKey reads a bracketed key starting at s[0] == '[' and returns the key
// and the number of bytes consumed, including both brackets.
func scanKey(s string) (any, int, error) {
	body := s[1:]
	var key any
	var n int
	switch {
	case strings.HasPrefix(body, `"`):
		q, err := strconv.QuotedPrefix(body)
		if err != nil {
			return nil, 0, fmt.Errorf("bad quoted key")
		}
		unq, err := strconv.Unquote(q)
		if err != nil {
			return nil, 0, fmt.Errorf("bad quoted key")
		}
		key, n = unq, len(q)
	case strings.HasPrefix(body, "'"):
		end := strings.IndexByte(body[1:], '\'')
		if end < 0 {
			return nil, 0, fmt.Errorf("unterminated key")
		}
		key, n = body[1:1+end], end+2
	default:
		end := strings.IndexByte(body, ']')
		if end < 0 {
			return nil, 0, fmt.Errorf("unterminated key")
		}
		i, err := strconv.Atoi(strings.TrimSpace(body[:end]))
		if err != nil {
			return nil, 0, fmt.Errorf("key must be an integer or a quoted string")
		}
		key, n = i, end
	}
	if n >= len(body) || body[n] != ']' {
		return nil, 0, fmt.Errorf("expected ']'")
	}
	return key, n + 2, nil
}
