package cnab

import "strconv"

// Kind is the coercion rule applied to a field's raw characters.
type Kind int

const (
	// Alpha is free text, left aligned and right padded with spaces.
	// Extraction trims the trailing padding and keeps everything else,
	// leading blanks included.
	Alpha Kind = iota

	// Numeric is an unsigned integer, right aligned and typically left
	// padded with zeros. An all-blank field coerces to zero: banks send
	// zeroed numeric fields as runs of spaces.
	Numeric

	// Decimal is a Numeric with implied fraction digits. The raw digits
	// "001234" at scale 2 represent the value 12.34.
	Decimal
)

func (k Kind) String() string {
	switch k {
	case Alpha:
		return "alpha"
	case Numeric:
		return "numeric"
	case Decimal:
		return "decimal"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}
