package cnab

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// Unmarshal parses one fixed-width line and stores the extracted fields in
// the struct pointed to by v. The layout comes from v's fixed tags:
//
//	type Header struct {
//		Banco int     `fixed:"1..3,numeric"`
//		Nome  string  `fixed:"31..60,alpha"`
//		Saldo float64 `fixed:"61..75,decimal(2)"`
//	}
//
// Tag positions address characters, 1-based and inclusive on both ends. The
// tagged fields must form a valid layout; overlapping or malformed tags make
// every use of the type fail with the same error. If v is nil or not a
// pointer to a struct, Unmarshal returns an *InvalidUnmarshalError.
//
// Kinds bind strictly: alpha into string fields or types implementing
// encoding.TextUnmarshaler, numeric into integer fields of any width, and
// decimal into float32 or float64. A numeric value outside the target
// type's range fails with *InvalidNumericError rather than wrapping.
// Pointer fields are allocated as needed.
func Unmarshal(line string, v any) error {
	elem, err := structValueOf(v)
	if err != nil {
		return err
	}
	spec := cachedStructSpec(elem.Type())
	if spec.err != nil {
		return spec.err
	}
	return unmarshalLine(line, elem, spec)
}

// Bind stores the fields of an already-parsed record into the struct
// pointed to by v, matching record entries to tagged struct fields by name.
// The record may come from any schema, not only the one v's tags declare;
// record entries with no matching struct field are ignored. A struct field
// with no record entry, or one whose record value is of a different kind
// than its tag declares, fails with *BindingMismatchError.
func Bind(rec Record, v any) error {
	elem, err := structValueOf(v)
	if err != nil {
		return err
	}
	spec := cachedStructSpec(elem.Type())
	if spec.err != nil {
		return spec.err
	}
	return bindRecord(rec, elem, spec)
}

// SchemaFor returns the validated schema declared by v's fixed tags. v may
// be a struct value or a pointer to one; a typed nil such as (*Header)(nil)
// works too. The schema is built once per type and shared, so mutating the
// result through Fields copies is safe while the Schema itself is not
// modifiable.
func SchemaFor(v any) (*Schema, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cnab: SchemaFor(%v)", reflect.TypeOf(v))
	}
	spec := cachedStructSpec(t)
	if spec.err != nil {
		return nil, spec.err
	}
	return spec.schema, nil
}

// structValueOf checks the target contract shared by Unmarshal and Bind: a
// non-nil pointer to a struct.
func structValueOf(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	if rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	return rv.Elem(), nil
}

func unmarshalLine(line string, elem reflect.Value, spec structSpec) error {
	rec, err := spec.schema.Parse(line)
	if err != nil {
		return err
	}
	return bindRecord(rec, elem, spec)
}

func bindRecord(rec Record, v reflect.Value, spec structSpec) error {
	for i, f := range spec.schema.fields {
		val, ok := rec[f.Name]
		if !ok {
			return &BindingMismatchError{Field: f.Name, Missing: true}
		}
		if val.Kind() != f.Kind {
			return &BindingMismatchError{Field: f.Name, Want: f.Kind, Got: val.Kind()}
		}
		if err := spec.setters[i](v.Field(spec.indices[i]), f.Name, val); err != nil {
			return err
		}
	}
	return nil
}

// A valueSetter stores one extracted Value into a struct field. The caller
// has already checked that the Value's kind matches the field's tag.
type valueSetter func(v reflect.Value, name string, val Value) error

var textUnmarshalerType = reflect.TypeOf(new(encoding.TextUnmarshaler)).Elem()

// newValueSetter returns a setter that stores values of the given kind into
// targets of type t, or ok=false when t cannot carry that kind. The
// type/kind check happens here, once per struct type; setters themselves
// only fail on values the target cannot represent.
func newValueSetter(t reflect.Type, kind Kind) (valueSetter, bool) {
	if kind == Alpha {
		if t.Implements(textUnmarshalerType) {
			return textUnmarshalerSetter(t, false), true
		}
		if reflect.PtrTo(t).Implements(textUnmarshalerType) {
			return textUnmarshalerSetter(t, true), true
		}
	}

	switch t.Kind() {
	case reflect.Ptr:
		return ptrSetter(t, kind)
	case reflect.String:
		if kind == Alpha {
			return stringSetter, true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if kind == Numeric {
			return intSetter, true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if kind == Numeric {
			return uintSetter, true
		}
	case reflect.Float32, reflect.Float64:
		if kind == Decimal {
			return floatSetter, true
		}
	}
	return nil, false
}

func textUnmarshalerSetter(t reflect.Type, shouldAddr bool) valueSetter {
	return func(v reflect.Value, name string, val Value) error {
		if shouldAddr {
			v = v.Addr()
		}
		// set to zero value if this is nil
		if t.Kind() == reflect.Ptr && v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		s, _ := val.AsString()
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("cnab: field %s: %w", name, err)
		}
		return nil
	}
}

func ptrSetter(t reflect.Type, kind Kind) (valueSetter, bool) {
	elem, ok := newValueSetter(t.Elem(), kind)
	if !ok {
		return nil, false
	}
	return func(v reflect.Value, name string, val Value) error {
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return elem(reflect.Indirect(v), name, val)
	}, true
}

func stringSetter(v reflect.Value, _ string, val Value) error {
	s, _ := val.AsString()
	v.SetString(s)
	return nil
}

func intSetter(v reflect.Value, name string, val Value) error {
	n, _ := val.AsInt64()
	if v.OverflowInt(n) {
		return &InvalidNumericError{Field: name, Slice: strconv.FormatInt(n, 10)}
	}
	v.SetInt(n)
	return nil
}

func uintSetter(v reflect.Value, name string, val Value) error {
	n, _ := val.AsInt64()
	if n < 0 || v.OverflowUint(uint64(n)) {
		return &InvalidNumericError{Field: name, Slice: strconv.FormatInt(n, 10)}
	}
	v.SetUint(uint64(n))
	return nil
}

func floatSetter(v reflect.Value, name string, val Value) error {
	f, _ := val.AsFloat64()
	if v.OverflowFloat(f) {
		return &InvalidNumericError{Field: name, Slice: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	v.SetFloat(f)
	return nil
}

// An InvalidUnmarshalError describes an invalid argument passed to Unmarshal
// or Bind. (The argument must be a non-nil pointer to a struct.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "cnab: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Ptr {
		return "cnab: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	if e.Type.Elem().Kind() != reflect.Struct {
		return "cnab: Unmarshal(non-struct " + e.Type.String() + ")"
	}
	return "cnab: Unmarshal(nil " + e.Type.String() + ")"
}

// A BindingMismatchError reports a field whose target cannot carry the
// value the layout produces: the record holds a value of a different kind
// than the field's tag declares, the record holds no value at all, or the
// target's Go type cannot represent the declared kind. It marks a defect in
// the struct or schema wiring, not bad input data.
type BindingMismatchError struct {
	Field   string
	Want    Kind         // kind the binding expects
	Got     Kind         // kind the record holds, when a value was present
	Type    reflect.Type // target type, when the type itself cannot carry Want
	Missing bool         // the record has no value for Field
}

func (e *BindingMismatchError) Error() string {
	switch {
	case e.Missing:
		return fmt.Sprintf("cnab: field %q: no value in record", e.Field)
	case e.Type != nil:
		return fmt.Sprintf("cnab: field %q: cannot bind %s value into %s", e.Field, e.Want, e.Type)
	default:
		return fmt.Sprintf("cnab: field %q: record holds %s, binding wants %s", e.Field, e.Got, e.Want)
	}
}
