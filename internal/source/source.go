// Package source reads records for table building from files, SQL
// databases and HTML documents.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	ErrUnsupportedDriver = errors.New("unsupported driver")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrNoTable           = errors.New("no table found")
)

// Set is a batch of records with the column names they carry. Columns are
// in source order for SQL and HTML, and sorted for JSON and YAML, whose
// objects are unordered.
type Set struct {
	Columns []string
	Records []any
}

// ReadFile decodes the records in path, choosing the decoder by extension:
// .json, .jsonl and .ndjson are JSON; .yaml and .yml are YAML; .html and
// .htm are read with [HTMLTable] using the first <table>.
func ReadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson":
		return DecodeJSON(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	case ".html", ".htm":
		return HTMLTable(f, "")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, path)
	}
}

// DecodeJSON reads a stream of JSON values. Arrays contribute each element
// as a record, any other value is one record, so both a single array and
// JSON lines work. Numbers decode as [json.Number].
func DecodeJSON(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding json records: %w", err)
		}
		records = appendRecords(records, v)
	}
	return &Set{Columns: columnsOf(records), Records: records}, nil
}

// DecodeYAML reads one or more YAML documents, with the same array
// handling as [DecodeJSON].
func DecodeYAML(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	var records []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding yaml records: %w", err)
		}
		records = appendRecords(records, v)
	}
	return &Set{Columns: columnsOf(records), Records: records}, nil
}

func appendRecords(records []any, v any) []any {
	switch v := v.(type) {
	case nil:
		return records
	case []any:
		return append(records, v...)
	default:
		return append(records, v)
	}
}

// columnsOf collects the keys of all map records, sorted.
func columnsOf(records []any) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	return cols
}
