package cnab

import (
	"math"
	"strconv"
)

// Value is a single extracted field before it is bound to a concrete type.
// Values are produced per line by Schema.Parse and consumed right away by
// the binder or the Record accessors; the zero Value is Alpha("").
//
// The As accessors are partial: they report ok=false on a kind mismatch
// instead of failing. Turning a mismatch into a hard error is the binder's
// job, not the Value's.
type Value struct {
	kind  Kind
	str   string
	num   int64 // the Numeric value, or the Decimal raw digits
	scale uint8
}

// AlphaValue returns a text Value.
func AlphaValue(s string) Value { return Value{kind: Alpha, str: s} }

// NumericValue returns an integer Value.
func NumericValue(n int64) Value { return Value{kind: Numeric, num: n} }

// DecimalValue returns a scaled-decimal Value. raw holds the digits exactly
// as written; scale is the number of implied fraction digits.
func DecimalValue(raw int64, scale uint8) Value {
	return Value{kind: Decimal, num: raw, scale: scale}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the text of an Alpha value.
func (v Value) AsString() (string, bool) {
	if v.kind != Alpha {
		return "", false
	}
	return v.str, true
}

// AsInt64 returns the integer of a Numeric value.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != Numeric {
		return 0, false
	}
	return v.num, true
}

// AsFloat64 converts a Decimal value to raw / 10^scale.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != Decimal {
		return 0, false
	}
	return float64(v.num) / math.Pow10(int(v.scale)), true
}

// AsDecimal returns the raw digits and scale of a Decimal value, for callers
// that prefer fixed-point arithmetic over the float conversion.
func (v Value) AsDecimal() (raw int64, scale uint8, ok bool) {
	if v.kind != Decimal {
		return 0, 0, false
	}
	return v.num, v.scale, true
}

// String renders a diagnostic form such as Numeric(341) or Alpha("BANCO").
func (v Value) String() string {
	switch v.kind {
	case Numeric:
		return "Numeric(" + strconv.FormatInt(v.num, 10) + ")"
	case Decimal:
		return "Decimal(" + strconv.FormatInt(v.num, 10) + ",scale=" + strconv.Itoa(int(v.scale)) + ")"
	default:
		return "Alpha(" + strconv.Quote(v.str) + ")"
	}
}
