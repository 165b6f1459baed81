package tablebuilder_test

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/bjaus/tablebuilder"
)

func TestStringify(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		want  tablebuilder.Cell
	}{
		"nil":       {value: nil, want: tablebuilder.Cell{}},
		"string":    {value: "s", want: tablebuilder.Text("s")},
		"cell":      {value: tablebuilder.Styled("c", "red"), want: tablebuilder.Styled("c", "red")},
		"int":       {value: 42, want: tablebuilder.Text("42")},
		"float":     {value: 0.1, want: tablebuilder.Text("0.1")},
		"big float": {value: 1e21, want: tablebuilder.Text("1000000000000000000000")},
		"float32":   {value: float32(2.5), want: tablebuilder.Text("2.5")},
		"stringer":  {value: netip.MustParseAddr("10.0.0.1"), want: tablebuilder.Text("10.0.0.1")},
		"error":     {value: errors.New("bad"), want: tablebuilder.Text("bad")},
		"decimal":   {value: decimal.RequireFromString("1.50"), want: tablebuilder.Text("1.5")},
		"bool":      {value: true, want: tablebuilder.Text("true")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tablebuilder.Stringify(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatters(t *testing.T) {
	t.Parallel()
	tmpl, err := tablebuilder.Template("{{.Name}} <{{.Email}}>")
	require.NoError(t, err)

	tests := map[string]struct {
		format tablebuilder.Formatter
		value  any
		want   tablebuilder.Cell
	}{
		"sprintf":           {format: tablebuilder.Sprintf("%05.1f"), value: 3.14159, want: tablebuilder.Text("003.1")},
		"string func":       {format: tablebuilder.StringFunc(func(v any) string { return "!" }), value: 1, want: tablebuilder.Text("!")},
		"number grouping":   {format: tablebuilder.Number(language.English, 2), value: 1234567.891, want: tablebuilder.Text("1,234,567.89")},
		"number german":     {format: tablebuilder.Number(language.German, 0), value: 1234567, want: tablebuilder.Text("1.234.567")},
		"currency":          {format: tablebuilder.Currency("$", 2), value: 12.5, want: tablebuilder.Text("$12.50")},
		"currency decimal":  {format: tablebuilder.Currency("€", 2), value: decimal.RequireFromString("0.005"), want: tablebuilder.Text("€0.01")},
		"currency negative": {format: tablebuilder.Currency("$", 2), value: -3, want: tablebuilder.Styled("($3.00)", "red")},
		"template": {
			format: tmpl,
			value:  map[string]string{"Name": "Ada", "Email": "ada@example.com"},
			want:   tablebuilder.Text("Ada <ada@example.com>"),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatterErrors(t *testing.T) {
	t.Parallel()
	_, err := tablebuilder.Template("{{.Name")
	assert.ErrorIs(t, err, tablebuilder.ErrInvalidTemplate)

	_, err = tablebuilder.Currency("$", 2)("abc")
	assert.ErrorIs(t, err, tablebuilder.ErrNotNumeric)

	_, err = tablebuilder.Number(language.English, 2)(struct{}{})
	assert.ErrorIs(t, err, tablebuilder.ErrNotNumeric)

	tmpl, err := tablebuilder.Template("{{.Missing.Deeper}}")
	require.NoError(t, err)
	_, err = tmpl(struct{}{})
	assert.Error(t, err)
}
