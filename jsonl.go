package tablebuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// writeJSONL writes one object per body row, keyed by column header and in
// column order. Columns without header text are keyed "col<N>".
func writeJSONL(w io.Writer, t *Table) error {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Header.Text
		if keys[i] == "" {
			keys[i] = fmt.Sprintf("col%d", i)
		}
	}
	for _, row := range t.Rows {
		line, err := orderedObject(keys, row)
		if err != nil {
			return err
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func orderedObject(keys []string, row []Cell) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		text := ""
		if i < len(row) {
			text = row[i].Text
		}
		v, err := json.Marshal(text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
