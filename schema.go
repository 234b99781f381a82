package cnab

import "fmt"

// FieldSpec names one field of a record layout.
type FieldSpec struct {
	// Name keys the extracted value in the parsed Record and is the join
	// key the binder matches on. It must be unique within a schema and
	// stable for the schema's lifetime.
	Name string

	// Pos is the field's place in the line, 1-based inclusive.
	Pos Position

	// Kind selects the coercion rule for the field's characters.
	Kind Kind

	// Scale is the count of implied fraction digits; meaningful only when
	// Kind is Decimal.
	Scale uint8
}

// Schema is a validated, ordered record layout. A Schema is immutable once
// built and safe to share read-only across concurrent Parse calls. The only
// way to obtain one is through a constructor that ran the validation, so a
// Schema in hand is always usable.
type Schema struct {
	fields []FieldSpec
	ll     int // line length the layout implies: the largest End
}

// NewSchema validates the given fields and assembles them into a Schema.
// Fields keep their declaration order. Validation is all or nothing: the
// first malformed position, duplicate name, or overlapping pair rejects the
// whole layout, overlaps with an *OverlapError naming both fields.
func NewSchema(fields ...FieldSpec) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("cnab: schema has no fields")
	}
	s := &Schema{fields: make([]FieldSpec, len(fields))}
	copy(s.fields, fields)

	seen := make(map[string]struct{}, len(s.fields))
	for _, f := range s.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("cnab: field at %s has no name", f.Pos)
		}
		if !f.Pos.valid() {
			return nil, fmt.Errorf("cnab: field %q: invalid position %s: start must be >= 1 and end >= start", f.Name, f.Pos)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("cnab: duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Pos.End > s.ll {
			s.ll = f.Pos.End
		}
	}

	// Pairwise overlap scan. Layouts are tens of fields and validated once
	// per process, so the quadratic cost is irrelevant.
	for i, f1 := range s.fields {
		for _, f2 := range s.fields[i+1:] {
			lo := max(f1.Pos.Start, f2.Pos.Start)
			hi := min(f1.Pos.End, f2.Pos.End)
			if lo <= hi {
				return nil, &OverlapError{
					FieldA: f1.Name, PosA: f1.Pos,
					FieldB: f2.Name, PosB: f2.Pos,
					Overlap: Position{Start: lo, End: hi},
				}
			}
		}
	}
	return s, nil
}

// Fields returns a copy of the field list in declaration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields in the layout.
func (s *Schema) Len() int { return len(s.fields) }

// LineLen returns the line length the layout implies: the largest end
// position among its fields, which is the minimum length of a complete
// record.
func (s *Schema) LineLen() int { return s.ll }

// Lookup returns the named field spec.
func (s *Schema) Lookup(name string) (FieldSpec, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// An OverlapError reports two fields whose position ranges intersect.
// Touching ranges such as 1..3 and 4..6 share no index and do not overlap;
// equal or nested ranges always do. A layout with any overlapping pair is
// rejected as a whole.
type OverlapError struct {
	FieldA, FieldB string
	PosA, PosB     Position
	Overlap        Position
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("cnab: position conflict: field %q occupies %s, field %q occupies %s, overlapping at %s",
		e.FieldA, e.PosA, e.FieldB, e.PosB, e.Overlap)
}
