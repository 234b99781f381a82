// Package cnab extracts strongly-typed records from fixed-width text lines,
// the record format of Brazilian CNAB 240/400 interchange files and similar
// legacy bank layouts.
//
// Every field of a layout occupies a fixed character range, numbered the way
// bank manuals print them: 1-based and inclusive on both ends, so "position
// 001 to 003" means the first three characters. A layout is a Schema of named
// fields, and each field has a Kind selecting how its raw characters coerce:
// alpha (text, trailing padding removed), numeric (unsigned integer digits,
// all-blank means zero) or decimal (integer digits with an implied fraction,
// so "001234" at scale 2 is 12.34).
//
// Schemas come from three equivalent surfaces: fixed struct tags (Unmarshal,
// SchemaFor), a programmatic builder (NewSchema), or declarative YAML/TOML
// documents (ParseSchemaYAML, ParseSchemaTOML). Every surface runs the same
// validation exactly once, before any line is parsed: fields with overlapping
// positions reject the whole layout.
//
// Parsing is one line per call and pure. File iteration belongs to the
// Decoder, which feeds the parser line by line, transcodes legacy character
// sets, and attaches line numbers to per-line errors so callers can skip a
// bad record and continue with the rest of the file. A validated Schema is
// immutable and safe to share across any number of goroutines.
package cnab
