package tablebuilder_test

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tablebuilder"
)

// cartSpec has a plain column, a summed column and a column with a literal
// footer.
func cartSpec(t *testing.T) *tablebuilder.Spec {
	t.Helper()
	s, err := tablebuilder.NewSpec(
		tablebuilder.MustField("name", "name", tablebuilder.WithKey("name")),
		tablebuilder.MustField("qty", "qty", tablebuilder.WithKey("qty"), tablebuilder.WithFooter(tablebuilder.Sum)),
		tablebuilder.MustField("price", "price", tablebuilder.WithKey("price"), tablebuilder.WithFooter("-")),
	)
	require.NoError(t, err)
	return s
}

func cartRecords() []any {
	return []any{
		map[string]any{"name": "A", "qty": 1, "price": 10},
		map[string]any{"name": "B", "qty": 2, "price": 20},
	}
}

func cellTexts(cells []tablebuilder.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

func rowTexts(t *tablebuilder.Table) [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = cellTexts(r)
	}
	return out
}

func TestBuildNormal(t *testing.T) {
	t.Parallel()
	tbl, err := cartSpec(t).Build(cartRecords(), tablebuilder.ShowFooter(true))
	require.NoError(t, err)

	assert.False(t, tbl.Transposed)
	assert.Equal(t, []string{"name", "qty", "price"}, cellTexts(tbl.Headers()))
	assert.Equal(t, [][]string{{"A", "1", "10"}, {"B", "2", "20"}}, rowTexts(tbl))
	assert.Equal(t, []string{"", "3", "-"}, cellTexts(tbl.Footers()))
	assert.Empty(t, tbl.Sections)
	assert.True(t, tbl.Options.ShowFooter)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumColumns())
}

func TestBuildNilPointerRecord(t *testing.T) {
	t.Parallel()
	spec := tablebuilder.MustSpec(
		tablebuilder.MustField("initial", "Initial",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Initial")),
			tablebuilder.WithDefault("-")),
		tablebuilder.MustField("city", "City",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Address").Attr("City")),
			tablebuilder.WithDefault("?")),
	)
	tbl, err := spec.Build([]any{&contact{Name: "Ada"}, (*contact)(nil)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "?"}, {"-", "?"}}, rowTexts(tbl))
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()
	tbl, err := cartSpec(t).Build(nil)
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
	assert.Len(t, tbl.Columns, 3)
	assert.Equal(t, "0", tbl.Columns[1].Footer.Text)
}

func TestBuildDoesNotMutateRecords(t *testing.T) {
	t.Parallel()
	records := []any{"b", "a", "c"}
	s := tablebuilder.MustSpec(tablebuilder.MustField("v", "V"))
	_, err := s.Build(records, tablebuilder.SectionBy(func(r any) string { return r.(string) }))
	require.NoError(t, err)
	assert.Equal(t, []any{"b", "a", "c"}, records)
}

func TestBuildSections(t *testing.T) {
	t.Parallel()
	type sale struct {
		Region string
		Amount int
	}
	records := tablebuilder.Records([]sale{
		{"west", 1}, {"east", 2}, {"west", 3}, {"north", 4}, {"east", 5},
	})
	s := tablebuilder.MustSpec(
		tablebuilder.MustField("region", "Region", tablebuilder.WithKey(tablebuilder.Obj.Attr("Region"))),
		tablebuilder.MustField("amount", "Amount", tablebuilder.WithKey(tablebuilder.Obj.Attr("Amount"))),
	)

	tests := map[string]struct {
		opt      tablebuilder.Option
		rows     [][]string
		sections []int
	}{
		"by func": {
			opt:      tablebuilder.SectionBy(func(r any) string { return r.(sale).Region }),
			rows:     [][]string{{"east", "2"}, {"east", "5"}, {"north", "4"}, {"west", "1"}, {"west", "3"}},
			sections: []int{2, 3},
		},
		"by path": {
			opt:      tablebuilder.SectionByPath(tablebuilder.Obj.Attr("Region")),
			rows:     [][]string{{"east", "2"}, {"east", "5"}, {"north", "4"}, {"west", "1"}, {"west", "3"}},
			sections: []int{2, 3},
		},
		"by int key": {
			opt:      tablebuilder.SectionBy(func(r any) int { return r.(sale).Amount % 2 }),
			rows:     [][]string{{"east", "2"}, {"north", "4"}, {"west", "1"}, {"west", "3"}, {"east", "5"}},
			sections: []int{2},
		},
		"single section": {
			opt:      tablebuilder.SectionBy(func(any) string { return "all" }),
			rows:     [][]string{{"west", "1"}, {"east", "2"}, {"west", "3"}, {"north", "4"}, {"east", "5"}},
			sections: nil,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl, err := s.Build(records, tt.opt)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, rowTexts(tbl))
			assert.Equal(t, tt.sections, tbl.Sections)
			for i := range tbl.Rows {
				assert.Equal(t, slices.Contains(tt.sections, i), tbl.SectionBefore(i))
			}
		})
	}
}

func TestBuildSectionByNilClears(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(tablebuilder.MustField("v", "V"))
	b := s.Builder(tablebuilder.SectionBy(func(r any) string { return r.(string) }))
	tbl, err := b.Build([]any{"b", "a"}, tablebuilder.SectionBy[string](nil))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"b"}, {"a"}}, rowTexts(tbl))
	assert.Empty(t, tbl.Sections)
}

func TestBuildTransposed(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		opts []tablebuilder.Option
		rows [][]string
	}{
		"header only": {
			rows: [][]string{{"name", "A", "B"}, {"qty", "1", "2"}, {"price", "10", "20"}},
		},
		"header and footer": {
			opts: []tablebuilder.Option{tablebuilder.ShowFooter(true)},
			rows: [][]string{{"name", "A", "B", ""}, {"qty", "1", "2", "3"}, {"price", "10", "20", "-"}},
		},
		"neither": {
			opts: []tablebuilder.Option{tablebuilder.ShowHeader(false)},
			rows: [][]string{{"A", "B"}, {"1", "2"}, {"10", "20"}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := append([]tablebuilder.Option{tablebuilder.Transposed(true)}, tt.opts...)
			tbl, err := cartSpec(t).Build(cartRecords(), opts...)
			require.NoError(t, err)
			assert.True(t, tbl.Transposed)
			assert.Equal(t, tt.rows, rowTexts(tbl))
			assert.Len(t, tbl.Columns, len(tt.rows[0]))
			for i, c := range tbl.Columns {
				assert.Equal(t, "row"+string(rune('0'+i)), c.Header.Text)
			}
			assert.False(t, tbl.Options.ShowHeader)
			assert.False(t, tbl.Options.ShowFooter)
		})
	}
}

func TestBuildTransposedStyles(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(
		tablebuilder.MustField("plain", "Plain", tablebuilder.WithFooter("f")),
		tablebuilder.MustField("loud", "Loud",
			tablebuilder.WithStyle("bold"),
			tablebuilder.WithHeaderStyle("red"),
			tablebuilder.WithFooterStyle("blue"),
			tablebuilder.WithFooter("f")),
	)
	tbl, err := s.Build([]any{"x"},
		tablebuilder.Transposed(true),
		tablebuilder.ShowFooter(true),
		tablebuilder.TableStyle("dim"))
	require.NoError(t, err)

	styles := func(row []tablebuilder.Cell) []tablebuilder.Style {
		out := make([]tablebuilder.Style, len(row))
		for i, c := range row {
			out[i] = c.Style
		}
		return out
	}
	assert.Equal(t, []tablebuilder.Style{tablebuilder.StyleHeader, "dim", tablebuilder.StyleFooter}, styles(tbl.Rows[0]))
	assert.Equal(t, []tablebuilder.Style{"red", "bold", "blue"}, styles(tbl.Rows[1]))
}

func TestBuildTransposedIgnoresSections(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(tablebuilder.MustField("v", "V"))
	tbl, err := s.Build([]any{"b", "a"},
		tablebuilder.Transposed(true),
		tablebuilder.SectionBy(func(r any) string { return r.(string) }))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"V", "b", "a"}}, rowTexts(tbl))
	assert.Empty(t, tbl.Sections)
}

func TestBuildNormalCellsCarryFormatterStylesOnly(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(
		tablebuilder.MustField("amt", "Amt",
			tablebuilder.WithFormatter(tablebuilder.Currency("$", 0)),
			tablebuilder.WithStyle("bold")),
	)
	tbl, err := s.Build([]any{5, -5})
	require.NoError(t, err)
	assert.Equal(t, tablebuilder.Style(""), tbl.Rows[0][0].Style)
	assert.Equal(t, tablebuilder.Style("red"), tbl.Rows[1][0].Style)
	assert.Equal(t, tablebuilder.Style("bold"), tbl.Columns[0].Style)
}

func TestBuildOptionsPrecedence(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(tablebuilder.MustField("v", "V"))
	b := s.Builder(tablebuilder.Title("builder"), tablebuilder.ShowFooter(true), tablebuilder.Transposed(true))

	tbl, err := b.Build([]any{"x"})
	require.NoError(t, err)
	assert.Equal(t, "builder", tbl.Options.Title)
	assert.True(t, tbl.Transposed)
	assert.Equal(t, tablebuilder.BoxRounded, tbl.Options.Box)

	tbl, err = b.Build([]any{"x"}, tablebuilder.Title("call"), tablebuilder.Transposed(false))
	require.NoError(t, err)
	assert.Equal(t, "call", tbl.Options.Title)
	assert.False(t, tbl.Transposed)
	assert.True(t, tbl.Options.ShowFooter)

	// Call-time options never leak into later builds.
	tbl, err = b.Build([]any{"x"})
	require.NoError(t, err)
	assert.Equal(t, "builder", tbl.Options.Title)
}

func TestBuildErrorReturnsNoTable(t *testing.T) {
	t.Parallel()
	s := tablebuilder.MustSpec(
		tablebuilder.MustField("n", "N", tablebuilder.WithFooter(tablebuilder.Sum)),
	)
	tbl, err := s.Build([]any{1, "two"}, tablebuilder.ShowFooter(true))
	require.Error(t, err)
	assert.Nil(t, tbl)
	assert.ErrorIs(t, err, tablebuilder.ErrNotNumeric)
}

func TestNewSpecDuplicate(t *testing.T) {
	t.Parallel()
	_, err := tablebuilder.NewSpec(
		tablebuilder.MustField("a", "A"),
		tablebuilder.MustField("a", "Again"),
	)
	assert.ErrorIs(t, err, tablebuilder.ErrDuplicateField)

	_, err = tablebuilder.NewSpec(nil)
	assert.ErrorIs(t, err, tablebuilder.ErrEmptyFieldName)
}

func TestSpecWith(t *testing.T) {
	t.Parallel()
	base := tablebuilder.MustSpec(tablebuilder.MustField("a", "A"))
	more, err := base.With(tablebuilder.MustField("b", "B"))
	require.NoError(t, err)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, more.Len())

	f, ok := more.Field("b")
	require.True(t, ok)
	assert.Equal(t, "b", f.Name())
	_, ok = base.Field("b")
	assert.False(t, ok)

	_, err = more.With(tablebuilder.MustField("a", "dup"))
	assert.ErrorIs(t, err, tablebuilder.ErrDuplicateField)
}

func TestBuildSeqAndChan(t *testing.T) {
	t.Parallel()
	b := tablebuilder.MustSpec(tablebuilder.MustField("v", "V")).Builder()

	tbl, err := tablebuilder.BuildSeq(b, slices.Values([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}}, rowTexts(tbl))

	ch := make(chan string, 2)
	ch <- "x"
	ch <- "y"
	close(ch)
	tbl, err = tablebuilder.BuildChan(b, ch)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}, {"y"}}, rowTexts(tbl))
}

func TestBuildLogs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := cartSpec(t).Build(cartRecords(), tablebuilder.WithLogger(logger))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "built table")
	assert.Contains(t, out, "records=2")
	assert.True(t, strings.Contains(out, "fields=3"))
}

func TestBuilderConcurrent(t *testing.T) {
	t.Parallel()
	b := cartSpec(t).Builder(tablebuilder.ShowFooter(true))
	done := make(chan []string, 8)
	for range 8 {
		go func() {
			tbl, err := b.Build(cartRecords())
			if err != nil {
				done <- nil
				return
			}
			done <- cellTexts(tbl.Footers())
		}()
	}
	for range 8 {
		assert.Equal(t, []string{"", "3", "-"}, <-done)
	}
}
