package tablebuilder

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// numKind ranks numeric results: a column of ints sums to an int64, any
// float makes it a float64, and exact decimals win over both.
type numKind int

const (
	kindInt numKind = iota
	kindFloat
	kindDecimal
)

func toDecimal(v any) (decimal.Decimal, numKind, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, kindDecimal, nil
	case *decimal.Decimal:
		if n == nil {
			break
		}
		return *n, kindDecimal, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, 0, fmt.Errorf("%w: %q", ErrNotNumeric, n)
		}
		return d, kindDecimal, nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return decimal.NewFromInt(rv.Int()), kindInt, nil
	case rv.CanUint():
		return decimal.NewFromUint64(rv.Uint()), kindInt, nil
	case rv.CanFloat():
		return decimal.NewFromFloat(rv.Float()), kindFloat, nil
	}
	return decimal.Decimal{}, 0, fmt.Errorf("%w: %v (%T)", ErrNotNumeric, v, v)
}

func fromDecimal(d decimal.Decimal, k numKind) any {
	switch k {
	case kindInt:
		return d.IntPart()
	case kindFloat:
		return d.InexactFloat64()
	default:
		return d
	}
}

// Sum adds all non-nil values. Ints sum to an int64, anything involving a
// float to a float64, and [decimal.Decimal] or [json.Number] inputs to a
// decimal. Arithmetic is exact either way.
func Sum(values []any) (any, error) {
	total := decimal.Zero
	kind := kindInt
	for _, v := range values {
		if v == nil {
			continue
		}
		d, k, err := toDecimal(v)
		if err != nil {
			return nil, err
		}
		total = total.Add(d)
		kind = max(kind, k)
	}
	return fromDecimal(total, kind), nil
}

// Count returns the number of non-nil values.
func Count(values []any) (any, error) {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n, nil
}

// Mean returns the average of the non-nil values, as a float64 unless a
// decimal was involved. It returns nil for a column without values.
func Mean(values []any) (any, error) {
	total := decimal.Zero
	kind := kindFloat
	n := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		d, k, err := toDecimal(v)
		if err != nil {
			return nil, err
		}
		total = total.Add(d)
		kind = max(kind, k)
		n++
	}
	if n == 0 {
		return nil, nil
	}
	return fromDecimal(total.Div(decimal.NewFromInt(int64(n))), kind), nil
}

// Min returns the smallest non-nil value. Values must be all numbers or all
// strings. It returns nil for a column without values.
func Min(values []any) (any, error) {
	return extreme(values, -1)
}

// Max returns the largest non-nil value. Values must be all numbers or all
// strings. It returns nil for a column without values.
func Max(values []any) (any, error) {
	return extreme(values, 1)
}

func extreme(values []any, want int) (any, error) {
	var best any
	for _, v := range values {
		if v == nil {
			continue
		}
		if best == nil {
			if _, isString := v.(string); !isString {
				if _, _, err := toDecimal(v); err != nil {
					return nil, err
				}
			}
			best = v
			continue
		}
		c, err := compareValues(v, best)
		if err != nil {
			return nil, err
		}
		if c == want {
			best = v
		}
	}
	return best, nil
}

func compareValues(a, b any) (int, error) {
	as, aString := a.(string)
	bs, bString := b.(string)
	if aString && bString {
		return cmp.Compare(as, bs), nil
	}
	if aString || bString {
		return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrNotNumeric, a, b)
	}
	ad, _, err := toDecimal(a)
	if err != nil {
		return 0, err
	}
	bd, _, err := toDecimal(b)
	if err != nil {
		return 0, err
	}
	return ad.Cmp(bd), nil
}

// Join returns a reducer concatenating the string form of non-nil values
// with sep.
func Join(sep string) Reducer {
	return func(values []any) (any, error) {
		parts := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				continue
			}
			c, err := Stringify(v)
			if err != nil {
				return nil, err
			}
			parts = append(parts, c.Text)
		}
		return strings.Join(parts, sep), nil
	}
}
