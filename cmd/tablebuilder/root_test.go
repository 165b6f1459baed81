package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestExampleCSV(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "example", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, `Category,Item,Qty,Price,Total
bakery,Bread,1,$2.25,$2.25
bakery,Croissant,4,$1.30,$5.20
dairy,Milk,2,$1.10,$2.20
dairy,Refund,-1,$1.10,($1.10)
fruit,Apple,3,$0.50,$1.50
fruit,Banana,6,$0.25,$1.50
Total,6,15,$1.08,$11.55
`, out)
}

func TestExampleTable(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "example")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.Contains(t, lines[1], "Cart")
	assert.Contains(t, out, "($1.10)")
	assert.Contains(t, lines[len(lines)-1], "prices in USD")
	// Three categories give two section breaks, plus the title, header
	// and footer separators.
	assert.Equal(t, 5, strings.Count(out, "├"))
}

func TestExampleTransposed(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "example", "-t", "-f", "tsv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Qty\t3\t1\t6\t2\t4\t-1\t15", lines[2])
}

func TestExampleColor(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "example", "--color", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| Category |")
}

func TestRenderStdin(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, `[{"b": "x", "a": 1}, {"a": 2}]`, "render", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,x\n2,\n", out)
}

func TestRenderFilesWithConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	records := filepath.Join(dir, "stock.yaml")
	require.NoError(t, os.WriteFile(records, []byte("- {name: apple, qty: 2}\n- {name: pear, qty: 5}\n"), 0o600))
	cfg := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
format: markdown
source:
  file: `+records+`
options:
  show_footer: true
fields:
  - name: name
    header: Fruit
    footer: All
  - name: qty
    justify: right
    footer_reduce: sum
`), 0o600))

	out, _, err := run(t, "", "render", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, `| Fruit | qty |
| ----- | --: |
| apple |   2 |
| pear  |   5 |
| All   |   7 |
`, out)

	out, _, err = run(t, "", "render", "--config", cfg, "-f", "jsonl", records)
	require.NoError(t, err)
	assert.Equal(t, "{\"Fruit\":\"apple\",\"qty\":\"2\"}\n{\"Fruit\":\"pear\",\"qty\":\"5\"}\n", out)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "", "render")
	assert.ErrorContains(t, err, "no records")

	_, _, err = run(t, "[1]", "render", "-f", "xml")
	assert.Error(t, err)

	_, _, err = run(t, "", "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestQuerySQLite(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "query", "--driver", "sqlite", "--dsn", ":memory:", "-f", "csv",
		"SELECT 'a' AS letter, 1 AS n UNION ALL SELECT 'b', 2")
	require.NoError(t, err)
	assert.Equal(t, "letter,n\na,1\nb,2\n", out)

	_, _, err = run(t, "", "query", "SELECT 1")
	assert.ErrorContains(t, err, "--driver, --dsn and a query are required")
}

func TestHTMLStdin(t *testing.T) {
	t.Parallel()
	page := `<table><tr><th>Host</th><th>Up</th></tr><tr><td>web</td><td>true</td></tr></table>`
	out, _, err := run(t, page, "html", "-f", "tsv")
	require.NoError(t, err)
	assert.Equal(t, "Host\tUp\nweb\ttrue\n", out)

	_, _, err = run(t, page, "html", "-s", "table.missing")
	assert.Error(t, err)
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	_, errOut, err := run(t, `[{"a": 1}]`, "render", "-v", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, errOut, "built table")
}
