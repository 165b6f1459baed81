package tablebuilder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrMissingPath       = errors.New("missing path")
	ErrInvalidPath       = errors.New("invalid path")
	ErrInvalidKeyType    = errors.New("invalid key type")
	ErrInvalidHeader     = errors.New("invalid header or footer")
	ErrEmptyFieldName    = errors.New("empty field name")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrRecordType        = errors.New("unexpected record type")
	ErrNotNumeric        = errors.New("value is not numeric")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrInvalidStyle      = errors.New("invalid style")
	ErrInvalidOption     = errors.New("invalid option")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format represents an output format for an assembled [Table].
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
)

var formats = []Format{FormatTable, FormatMarkdown, FormatCSV, FormatTSV, FormatHTML, FormatJSON, FormatJSONL, FormatYAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Sink renders an assembled table. [Format] is the built-in implementation.
type Sink interface {
	Render(w io.Writer, t *Table) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(w io.Writer, t *Table) error

// Render calls f.
func (f SinkFunc) Render(w io.Writer, t *Table) error { return f(w, t) }

// Render writes t to w in format f.
func (f Format) Render(w io.Writer, t *Table) error { return Write(w, f, t) }

// BoxStyle selects the characters used to draw table borders.
type BoxStyle int

const (
	BoxRounded     BoxStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BoxNone                        // No borders, space-separated columns
	BoxASCII                       // +-+|
	BoxHeavy                       // ┏━┓┗┛┃┳┻┣┫╋
	BoxDouble                      // ╔═╗╚╝║╦╩╠╣╬
	BoxSquare                      // ┌─┐└┘│┬┴├┤┼
	BoxHorizontals                 // ─ lines only, no verticals
	BoxSimple                      // header and footer rules only
)

var boxNames = map[BoxStyle]string{
	BoxRounded:     "rounded",
	BoxNone:        "none",
	BoxASCII:       "ascii",
	BoxHeavy:       "heavy",
	BoxDouble:      "double",
	BoxSquare:      "square",
	BoxHorizontals: "horizontals",
	BoxSimple:      "simple",
}

func (b BoxStyle) String() string {
	if s, ok := boxNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BoxStyle(%d)", int(b))
}

// ParseBoxStyle parses a box style name such as "rounded" or "ascii".
func ParseBoxStyle(s string) (BoxStyle, error) {
	for b, name := range boxNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return BoxRounded, fmt.Errorf("%w: box %q", ErrInvalidOption, s)
}

// Write renders t to w in format f.
func Write(w io.Writer, f Format, t *Table) error {
	switch f {
	case FormatTable:
		return writeTable(w, t)
	case FormatMarkdown:
		return writeMarkdown(w, t)
	case FormatCSV:
		return writeCSV(w, t)
	case FormatTSV:
		return writeTSV(w, t)
	case FormatHTML:
		return writeHTML(w, t)
	case FormatJSON:
		return writeJSON(w, t)
	case FormatJSONL:
		return writeJSONL(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders t in format f and returns the bytes.
func Marshal(f Format, t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
