package tablebuilder

import (
	"encoding/json"
	"io"
)

// document is the structured form of a table used by the JSON and YAML
// sinks.
type document struct {
	Title    string     `json:"title,omitempty" yaml:"title,omitempty"`
	Columns  []string   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows     [][]string `json:"rows" yaml:"rows"`
	Footer   []string   `json:"footer,omitempty" yaml:"footer,omitempty"`
	Sections []int      `json:"sections,omitempty" yaml:"sections,omitempty"`
	Caption  string     `json:"caption,omitempty" yaml:"caption,omitempty"`
}

func newDocument(t *Table) document {
	header, rows, footer := grid(t)
	return document{
		Title:    t.Options.Title,
		Columns:  header,
		Rows:     rows,
		Footer:   footer,
		Sections: t.Sections,
		Caption:  t.Options.Caption,
	}
}

func writeJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(t))
}
