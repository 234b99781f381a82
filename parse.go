package cnab

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse extracts every field of the schema from one line of text. Trailing
// carriage returns and newlines are stripped before any length or position
// arithmetic, so CRLF and LF sources parse identically; nothing else about
// the line is touched. Positions address characters, not bytes: lines
// carrying accented or other multi-byte text still slice on the boundaries
// the layout manual describes.
//
// The returned Record holds a Value for every field of the schema. A line
// shorter than a field's end position fails with *LineTooShortError, checked
// field by field in schema order so the first failure is deterministic. A
// Numeric or Decimal field holding anything besides ASCII digits or blanks
// fails with *InvalidNumericError. Errors are per line: the caller can
// record the bad line and continue with the next one.
//
// Parse is read-only on the schema and safe to call concurrently.
func (s *Schema) Parse(line string) (Record, error) {
	raw, err := newRawLine(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return nil, err
	}

	rec := make(Record, len(s.fields))
	for _, f := range s.fields {
		// A field's end position is the minimum line length that can hold it.
		if raw.len() < f.Pos.End {
			return nil, &LineTooShortError{Actual: raw.len(), Required: f.Pos.End}
		}
		lo, hi := f.Pos.Bounds()
		slice := raw.slice(lo, hi)

		var v Value
		switch f.Kind {
		case Alpha:
			// Left-aligned, right-padded convention: only the trailing
			// padding goes, leading blanks are content.
			v = AlphaValue(strings.TrimRightFunc(slice, unicode.IsSpace))
		case Numeric:
			n, err := parseDigits(slice, f.Name)
			if err != nil {
				return nil, err
			}
			v = NumericValue(n)
		case Decimal:
			n, err := parseDigits(slice, f.Name)
			if err != nil {
				return nil, err
			}
			v = DecimalValue(n, f.Scale)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

// parseDigits coerces the slice of a Numeric or Decimal field. An
// empty-after-trim slice is zero; anything non-empty must be plain ASCII
// digits with no sign and no separators.
func parseDigits(slice, field string) (int64, error) {
	s := strings.TrimSpace(slice)
	if s == "" {
		return 0, nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &InvalidNumericError{Field: field, Slice: slice}
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Digits only but still unparseable: the value overflows int64.
		return 0, &InvalidNumericError{Field: field, Slice: slice}
	}
	return n, nil
}

// rawLine is one line prepared for slicing by character rather than byte
// position. A plain single-byte line is sliced directly; the first
// multi-byte character triggers a lazily built table of character start
// offsets.
type rawLine struct {
	s string
	// idx[n] is the byte offset of the n-th character. nil while the line
	// holds only single-byte characters.
	idx []int
}

func newRawLine(s string) (rawLine, error) {
	i := findFirstMultiByteChar(s)
	if i == len(s) {
		return rawLine{s: s}, nil
	}
	// Backfill offsets for the single-byte prefix, then decode the rest.
	idx := make([]int, i, len(s))
	for j := 0; j < i; j++ {
		idx[j] = j
	}
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return rawLine{}, &InvalidTextError{Offset: i}
		}
		idx = append(idx, i)
		i += size
	}
	return rawLine{s: s, idx: idx}, nil
}

// findFirstMultiByteChar scans for multi-byte characters, returning either
// the index of the first one or the length of the string if there are none.
func findFirstMultiByteChar(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i]&0x80 == 0x80 {
			return i
		}
	}
	return len(s)
}

// len returns the line length in characters.
func (l rawLine) len() int {
	if l.idx == nil {
		return len(l.s)
	}
	return len(l.idx)
}

// slice returns the characters in [lo, hi). Callers bounds-check first.
func (l rawLine) slice(lo, hi int) string {
	if l.idx == nil {
		return l.s[lo:hi]
	}
	bLo := l.idx[lo]
	bHi := len(l.s)
	if hi < len(l.idx) {
		bHi = l.idx[hi]
	}
	return l.s[bLo:bHi]
}

// A LineTooShortError reports an input line without enough characters for a
// field of the schema. Actual is the line length after trailing CR/LF
// removal; Required is the end position of the first field, in schema order,
// that did not fit. The error is per line and recoverable: skip the line and
// keep processing.
type LineTooShortError struct {
	Actual   int
	Required int
}

func (e *LineTooShortError) Error() string {
	return fmt.Sprintf("cnab: line too short: length %d, field needs >= %d", e.Actual, e.Required)
}

// An InvalidNumericError reports a Numeric or Decimal field whose slice
// holds something other than ASCII digits, or whose value does not fit the
// bound integer type. Slice carries the field's characters exactly as they
// appeared in the line.
type InvalidNumericError struct {
	Field string
	Slice string
}

func (e *InvalidNumericError) Error() string {
	return fmt.Sprintf("cnab: field %q: invalid numeric value %q", e.Field, e.Slice)
}

// An InvalidTextError reports a line that is not valid UTF-8. The parser
// consumes decoded text; lines from legacy character sets must be transcoded
// first, see Decoder.SetEncoding.
type InvalidTextError struct {
	Offset int // byte offset of the offending sequence
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("cnab: invalid text encoding at byte %d", e.Offset)
}
