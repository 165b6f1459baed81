// Package tablebuilder turns a sequence of records into a table declared
// once as a list of fields.
//
// A [Field] names a column, says how to pull its value out of a record and
// how to turn that value into a [Cell]. A [Spec] is an ordered list of
// fields. Applying a spec to records through a [Builder] yields an
// assembled [Table], which any [Sink] can render:
//
//	spec := tablebuilder.MustSpec(
//		tablebuilder.MustField("name", "Name"),
//		tablebuilder.MustField("qty", "Qty", tablebuilder.WithFooter(tablebuilder.Sum)),
//	)
//	t, err := spec.Build(records, tablebuilder.ShowFooter(true))
//	if err != nil {
//		return err
//	}
//	tablebuilder.Write(os.Stdout, tablebuilder.FormatTable, t)
//
// # Paths
//
// [Path] is an immutable accessor built from [Obj] with [Path.Key] (map or
// index lookup) and [Path.Attr] (struct field or method). A string key on a
// field is shorthand for Obj.Key(s). [ParsePath] reads the textual form
// produced by [Path.String], e.g. Obj["items"][0].Name.
//
// # Headers and footers
//
// A header or footer is either a literal, returned as-is, or a [Reducer]
// over the column's values whose result goes through the field's
// [Formatter]. [Sum], [Count], [Mean], [Min], [Max] and [Join] are
// provided.
//
// # Orientation and sections
//
// Normal tables have one column per field. [SectionBy] sorts records by a
// key and records a section break wherever the key changes. [Transposed]
// tables have one row per field, with the header and footer as the first
// and last cell of every row.
//
// # Styles
//
// A [Style] is a string such as "bold red on white". Cells carry the style
// their formatter gave them; columns carry field styles. A [Styler] renders
// styles when a table is drawn: [PlainStyler] drops them and [ANSIStyler]
// turns them into terminal escape codes. [StyleByValue] gives equal values
// the same style.
//
// # Formats
//
// [Write] and [Marshal] render a table as a bordered terminal table,
// Markdown, CSV, TSV, HTML, JSON, JSON lines or YAML. Use [ParseFormat] to
// turn a flag value into a [Format].
//
// # Errors
//
// The package exports sentinel errors for use with [errors.Is]:
//
//   - [ErrMissingPath]: a path does not resolve and no default is set
//   - [ErrInvalidKeyType]: a field key of an unsupported type
//   - [ErrDuplicateField]: two fields with the same name in a spec
//   - [ErrNotNumeric]: a reducer got a value it cannot do arithmetic on
//   - [ErrUnsupportedFormat]: unknown format name
package tablebuilder
