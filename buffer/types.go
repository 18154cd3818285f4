package buffer

import "errors"

// Offsets address the document in bytes. 0 <= offset <= Len(), and every
// offset used for mutation must land on a UTF-8 code point boundary.

// ErrOutOfBounds reports an offset or range outside [0, Len()].
var ErrOutOfBounds = errors.New("buffer: offset out of bounds")

// ErrInvalidBoundary reports an offset that splits a multi-byte code point.
var ErrInvalidBoundary = errors.New("buffer: offset splits a code point")

// Range is a half-open byte range in the document: [Start, End).
// Start <= End for a normalized Range.
type Range struct {
	Start int
	End   int
}

// Edit replaces the text in [Start, End) with Text (which may contain '\n').
// An insertion has Start == End; a deletion has Text == "".
type Edit struct {
	Start int
	End   int
	Text  string
}

// LineCol is a 0-based (line, column) position. Col counts runes from the
// line start, not bytes and not screen cells.
type LineCol struct {
	Line int
	Col  int
}

// Point is a 0-based (row, column) position with the column measured in
// bytes from the line start. This is the coordinate form incremental
// parsers consume.
type Point struct {
	Row int
	Col int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether off lies inside the half-open range.
func (r Range) Contains(off int) bool {
	return off >= r.Start && off < r.End
}

// Intersects reports whether two half-open ranges share any byte. Touching
// ranges do not intersect.
func (r Range) Intersects(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// NormalizeRange orders the endpoints so Start <= End.
func NormalizeRange(r Range) Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
