// Package rope implements a copy-on-write rope over UTF-8 text.
//
// Nodes carry byte length and newline counts, so splitting, concatenation,
// and line lookups are logarithmic in document size. Values are immutable;
// every operation returns a new Rope sharing structure with its inputs.
package rope

import (
	"io"
	"strings"
)

// Rope is an immutable string-like value optimized for localized edits on
// large documents.
type Rope interface {
	// Len returns the length in bytes.
	Len() int
	// Newlines returns the number of '\n' bytes.
	Newlines() int
	// String materializes the full contents.
	String() string
	// WriteTo writes the full contents to w.
	WriteTo(w io.Writer) (int64, error)
}

type node struct {
	left, right Rope
	length      int
	newlines    int
}

func (n *node) Len() int      { return n.length }
func (n *node) Newlines() int { return n.newlines }

func (n *node) String() string {
	var b strings.Builder
	b.Grow(n.length)
	n.WriteTo(&b)
	return b.String()
}

func (n *node) WriteTo(w io.Writer) (int64, error) {
	nl, err := n.left.WriteTo(w)
	if err != nil {
		return nl, err
	}
	nr, err := n.right.WriteTo(w)
	return nl + nr, err
}

type leaf struct {
	text     string
	newlines int
}

func (l *leaf) Len() int       { return len(l.text) }
func (l *leaf) Newlines() int  { return l.newlines }
func (l *leaf) String() string { return l.text }

func (l *leaf) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.text)
	return int64(n), err
}

func newLeaf(text string) *leaf {
	return &leaf{text: text, newlines: strings.Count(text, "\n")}
}

// Empty returns an empty Rope.
func Empty() Rope { return New("") }

// New returns a Rope holding text.
func New(text string) Rope {
	if len(text) <= leafTarget {
		return newLeaf(text)
	}
	mid := len(text) / 2
	return Append(New(text[:mid]), New(text[mid:]))
}

// ReadFrom returns a Rope holding everything read from r until io.EOF.
// On error the Rope holds whatever was read before it.
func ReadFrom(r io.Reader) (Rope, error) {
	buf := make([]byte, 32*1024)
	rp := Empty()
	for {
		n, err := r.Read(buf)
		rp = Append(rp, New(string(buf[:n])))
		switch {
		case err == io.EOF:
			return rp, nil
		case err != nil:
			return rp, err
		}
	}
}

// leafTarget bounds leaf size. Small enough that editing a leaf copies
// little, large enough that a multi-megabyte document stays shallow.
const leafTarget = 1 << 9

// Append returns the concatenation of l then r.
func Append(l, r Rope) Rope {
	switch {
	case l.Len() == 0:
		return r
	case r.Len() == 0:
		return l
	case l.Len()+r.Len() <= leafTarget:
		return newLeaf(l.String() + r.String())
	}
	if ln, ok := l.(*node); ok && ln.right.Len()+r.Len() <= leafTarget {
		return &node{
			left:     ln.left,
			right:    newLeaf(ln.right.String() + r.String()),
			length:   ln.Len() + r.Len(),
			newlines: ln.Newlines() + r.Newlines(),
		}
	}
	return &node{
		left:     l,
		right:    r,
		length:   l.Len() + r.Len(),
		newlines: l.Newlines() + r.Newlines(),
	}
}

// Split returns the first i bytes and the remainder.
// Split panics if i < 0 or i > r.Len(); callers validate offsets first.
func Split(r Rope, i int) (left, right Rope) {
	return split(r, i)
}

// Insert returns r with ins inserted at byte offset i.
func Insert(r Rope, i int, ins Rope) Rope {
	l, rest := split(r, i)
	return Append(Append(l, ins), rest)
}

// Delete returns r without the bytes in [start, end).
func Delete(r Rope, start, end int) Rope {
	l, rest := split(r, start)
	_, tail := split(rest, end-start)
	return Append(l, tail)
}

// Slice returns the text of bytes [start, end).
func Slice(r Rope, start, end int) string {
	if start == end {
		return ""
	}
	_, r = split(r, start)
	r, _ = split(r, end-start)
	return r.String()
}

func split(r Rope, i int) (left, right Rope) {
	if i < 0 || i > r.Len() {
		panic("rope: split index out of range")
	}
	switch r := r.(type) {
	case *leaf:
		return newLeaf(r.text[:i]), newLeaf(r.text[i:])
	case *node:
		if i <= r.left.Len() {
			l, rest := split(r.left, i)
			return l, Append(rest, r.right)
		}
		l, rest := split(r.right, i-r.left.Len())
		return Append(r.left, l), rest
	default:
		panic("rope: unknown node type")
	}
}

// NewlinesBefore returns the number of '\n' bytes in [0, off).
// This is the 0-based line number of the position at off.
func NewlinesBefore(r Rope, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= r.Len() {
		return r.Newlines()
	}
	count := 0
	for {
		switch t := r.(type) {
		case *leaf:
			return count + strings.Count(t.text[:off], "\n")
		case *node:
			if off <= t.left.Len() {
				r = t.left
			} else {
				count += t.left.Newlines()
				off -= t.left.Len()
				r = t.right
			}
		default:
			panic("rope: unknown node type")
		}
	}
}

// OffsetAfterNewline returns the byte offset just past the n-th '\n'
// (0-based). It panics if n is not in [0, r.Newlines()); callers validate
// line numbers first.
func OffsetAfterNewline(r Rope, n int) int {
	if n < 0 || n >= r.Newlines() {
		panic("rope: newline index out of range")
	}
	off := 0
	for {
		switch t := r.(type) {
		case *leaf:
			i := -1
			for ; n >= 0; n-- {
				j := strings.IndexByte(t.text[i+1:], '\n')
				i += 1 + j
			}
			return off + i + 1
		case *node:
			if n < t.left.Newlines() {
				r = t.left
			} else {
				n -= t.left.Newlines()
				off += t.left.Len()
				r = t.right
			}
		default:
			panic("rope: unknown node type")
		}
	}
}

// IndexByteAt returns the byte at offset off.
// It panics if off is not in [0, r.Len()).
func IndexByteAt(r Rope, off int) byte {
	if off < 0 || off >= r.Len() {
		panic("rope: byte index out of range")
	}
	for {
		switch t := r.(type) {
		case *leaf:
			return t.text[off]
		case *node:
			if off < t.left.Len() {
				r = t.left
			} else {
				off -= t.left.Len()
				r = t.right
			}
		default:
			panic("rope: unknown node type")
		}
	}
}
