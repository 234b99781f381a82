package cnab

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// parseTag splits a struct field's fixed tag into its position and kind.
// If the tag is not valid, ok will be false.
//
// The grammar is "start..end" optionally followed by ",alpha", ",numeric",
// or ",decimal(scale)". A bare position means alpha. A bare decimal means
// scale zero.
func parseTag(tag string) (pos Position, kind Kind, scale uint8, ok bool) {
	posPart, kindPart, hasKind := strings.Cut(tag, ",")
	if pos, ok = parsePos(posPart); !ok {
		return pos, kind, scale, false
	}
	if !hasKind {
		return pos, Alpha, 0, true
	}
	kind, scale, ok = parseKind(kindPart)
	return pos, kind, scale, ok
}

// parsePos reads a "start..end" range, both bounds 1-based inclusive.
func parsePos(s string) (Position, bool) {
	startPart, endPart, found := strings.Cut(s, "..")
	if !found {
		return Position{}, false
	}
	start, err := strconv.Atoi(startPart)
	if err != nil {
		return Position{}, false
	}
	end, err := strconv.Atoi(endPart)
	if err != nil {
		return Position{}, false
	}
	p := Position{Start: start, End: end}
	return p, p.valid()
}

// parseKind reads a kind name.
func parseKind(s string) (Kind, uint8, bool) {
	switch s {
	case "alpha":
		return Alpha, 0, true
	case "numeric":
		return Numeric, 0, true
	case "decimal":
		return Decimal, 0, true
	}
	rest, found := strings.CutPrefix(s, "decimal(")
	if !found {
		return 0, 0, false
	}
	digits, found := strings.CutSuffix(rest, ")")
	if !found {
		return 0, 0, false
	}
	scale, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, 0, false
	}
	return Decimal, uint8(scale), true
}

// structSpec is a struct type's fixed tags compiled into a validated schema
// plus the machinery to store parsed values back into the struct. schema,
// setters and indices run parallel: setters[i] stores the value of schema
// field i into struct field indices[i].
type structSpec struct {
	schema  *Schema
	setters []valueSetter
	indices []int
	err     error
}

func buildStructSpec(t reflect.Type) structSpec {
	specs := make([]FieldSpec, 0, t.NumField())
	setters := make([]valueSetter, 0, t.NumField())
	indices := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup("fixed")
		if !tagged || sf.PkgPath != "" {
			// Untagged and unexported fields take no part in the layout.
			continue
		}
		pos, kind, scale, ok := parseTag(tag)
		if !ok {
			return structSpec{err: fmt.Errorf("cnab: %s field %s: malformed fixed tag %q", t.Name(), sf.Name, tag)}
		}
		setter, ok := newValueSetter(sf.Type, kind)
		if !ok {
			return structSpec{err: &BindingMismatchError{Field: sf.Name, Want: kind, Type: sf.Type}}
		}
		specs = append(specs, FieldSpec{Name: sf.Name, Pos: pos, Kind: kind, Scale: scale})
		setters = append(setters, setter)
		indices = append(indices, i)
	}
	schema, err := NewSchema(specs...)
	if err != nil {
		return structSpec{err: err}
	}
	return structSpec{schema: schema, setters: setters, indices: indices}
}

var structSpecCache sync.Map // map[reflect.Type]structSpec

// cachedStructSpec is like buildStructSpec but cached to prevent duplicate
// work. A type whose tags do not form a valid schema caches the failure the
// same way, so every use of the type reports the same error.
func cachedStructSpec(t reflect.Type) structSpec {
	if s, ok := structSpecCache.Load(t); ok {
		return s.(structSpec)
	}
	s, _ := structSpecCache.LoadOrStore(t, buildStructSpec(t))
	return s.(structSpec)
}
