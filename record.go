package cnab

import (
	"strconv"

	"fortio.org/safecast"
)

// A Record is the result of parsing one line: every schema field's name
// mapped to its extracted Value. Records are plain maps; callers can index
// them directly and use the Value accessors, or go through the typed
// accessors below, which name the field in their errors and share the
// binder's error types.
type Record map[string]Value

// Text returns the named Alpha field as a string. A missing field or a
// field of another kind fails with *BindingMismatchError.
func (r Record) Text(name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", &BindingMismatchError{Field: name, Missing: true}
	}
	s, ok := v.AsString()
	if !ok {
		return "", &BindingMismatchError{Field: name, Want: Alpha, Got: v.Kind()}
	}
	return s, nil
}

// Float returns the named Decimal field as a float64 with the scale
// applied. A missing field or a field of another kind fails with
// *BindingMismatchError.
func (r Record) Float(name string) (float64, error) {
	v, ok := r[name]
	if !ok {
		return 0, &BindingMismatchError{Field: name, Missing: true}
	}
	f, ok := v.AsFloat64()
	if !ok {
		return 0, &BindingMismatchError{Field: name, Want: Decimal, Got: v.Kind()}
	}
	return f, nil
}

type integer interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

// Int returns the named Numeric field in the requested integer type. A
// missing field or a field of another kind fails with
// *BindingMismatchError; a value outside the requested type's range fails
// with *InvalidNumericError.
func Int[T integer](r Record, name string) (T, error) {
	v, ok := r[name]
	if !ok {
		return 0, &BindingMismatchError{Field: name, Missing: true}
	}
	n, ok := v.AsInt64()
	if !ok {
		return 0, &BindingMismatchError{Field: name, Want: Numeric, Got: v.Kind()}
	}
	t, err := safecast.Conv[T](n)
	if err != nil {
		return 0, &InvalidNumericError{Field: name, Slice: strconv.FormatInt(n, 10)}
	}
	return t, nil
}
