package cnab

import "strconv"

// Position locates a field within a line using the 1-based inclusive
// numbering found in bank layout manuals: "position 001 to 003" is the first
// three characters of the line.
type Position struct {
	Start int
	End   int
}

// Width returns the number of characters the field occupies.
func (p Position) Width() int { return p.End - p.Start + 1 }

// Bounds converts the 1-based inclusive interval to a 0-based half-open
// interval [lo, hi) suitable for slicing. Position 1..3 becomes [0, 3).
func (p Position) Bounds() (lo, hi int) { return p.Start - 1, p.End }

// valid reports whether the interval is well formed. A start of zero or an
// end before the start is a programmer error caught at schema build time,
// never deferred to parse time.
func (p Position) valid() bool { return p.Start >= 1 && p.End >= p.Start }

// String renders the interval in layout-manual notation, e.g. "1..3".
func (p Position) String() string {
	return strconv.Itoa(p.Start) + ".." + strconv.Itoa(p.End)
}
