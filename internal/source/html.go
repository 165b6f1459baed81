package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLTable reads the first element matching selector (default "table")
// as records. Header cells (<th>) of the first row that has them name the
// columns; every other row with <td> cells becomes a record. Unnamed
// columns are called "col<N>".
func HTMLTable(r io.Reader, selector string) (*Set, error) {
	if selector == "" {
		selector = "table"
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoTable, selector)
	}

	var cols []string
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.Find("th")
		if th.Length() == 0 {
			return true
		}
		th.Each(func(_ int, cell *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(cell.Text()))
		})
		return false
	})

	set := &Set{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		td := tr.Find("td")
		if td.Length() == 0 {
			return
		}
		rec := make(map[string]any, td.Length())
		td.Each(func(i int, cell *goquery.Selection) {
			rec[columnName(cols, i)] = strings.TrimSpace(cell.Text())
		})
		set.Records = append(set.Records, rec)
		for len(cols) < td.Length() {
			cols = append(cols, columnName(cols, len(cols)))
		}
	})
	for i := range cols {
		cols[i] = columnName(cols, i)
	}
	set.Columns = cols
	return set, nil
}

func columnName(cols []string, i int) string {
	if i < len(cols) && cols[i] != "" {
		return cols[i]
	}
	return fmt.Sprintf("col%d", i)
}
