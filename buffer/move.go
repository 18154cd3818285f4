package buffer

import (
	"unicode/utf8"

	"github.com/iw2rmb/filigree/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, updates selection anchor/end; if false clears selection
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	nextCursor := b.moveCursor(prevCursor, m)
	nextCursor = b.snap(clampInt(nextCursor, 0, b.Len()))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}

	b.cursor = nextCursor
	b.sel = nextSel
	b.hist.breakRun()
	b.version++
}

func (b *Buffer) moveCursor(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		if off == 0 {
			return off
		}
		return b.prevBoundary(off)
	case DirRight:
		if off == b.Len() {
			return off
		}
		return b.nextBoundary(off)
	case DirUp, DirDown, DirHome, DirEnd:
		return b.moveLine(off, dir)
	default:
		return off
	}
}

func (b *Buffer) moveWord(off int, dir MoveDir) int {
	line, _ := b.LineAt(off)
	lr, _ := b.LineRange(line)
	text, _ := b.LineText(line)
	rel := off - lr.Start

	switch dir {
	case DirLeft:
		if rel == 0 {
			if off == 0 {
				return 0
			}
			return off - 1
		}
		return lr.Start + prevWordBoundary(text, rel)
	case DirRight:
		if rel >= len(text) {
			if off >= b.Len() {
				return off
			}
			return off + 1
		}
		return lr.Start + nextWordBoundary(text, rel)
	case DirHome:
		return lr.Start
	case DirEnd:
		return lr.End
	default:
		return off
	}
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	line, _ := b.LineAt(off)
	lr, _ := b.LineRange(line)

	switch dir {
	case DirHome:
		return lr.Start
	case DirEnd:
		return lr.End
	case DirUp:
		if line == 0 {
			return off
		}
		return b.offsetAtRuneCol(line-1, b.runeColAt(off, lr))
	case DirDown:
		if line == b.LineCount()-1 {
			return off
		}
		return b.offsetAtRuneCol(line+1, b.runeColAt(off, lr))
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return b.Len()
	default:
		return off
	}
}

func (b *Buffer) runeColAt(off int, lr Range) int {
	text, _ := b.Slice(lr.Start, clampInt(off, lr.Start, lr.End))
	return utf8.RuneCountInString(text)
}

// offsetAtRuneCol maps a rune column onto a line, clamping past-end
// columns to the line end.
func (b *Buffer) offsetAtRuneCol(line, col int) int {
	lr, _ := b.LineRange(line)
	text, _ := b.LineText(line)
	i := 0
	for o := range text {
		if i == col {
			return lr.Start + o
		}
		i++
	}
	return lr.End
}

// Word boundary rules: skip whitespace, then skip the adjoining run of
// non-whitespace. The newline is a hard boundary, so these operate within
// a single logical line.
func prevWordBoundary(text string, rel int) int {
	clusters := clusterSpans(text[:rel])
	i := len(clusters)
	for i > 0 && grapheme.IsSpace(clusters[i-1].s) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(clusters[i-1].s) {
		i--
	}
	if i == 0 {
		return 0
	}
	return clusters[i-1].end
}

func nextWordBoundary(text string, rel int) int {
	clusters := clusterSpans(text)
	i := 0
	for i < len(clusters) && clusters[i].start < rel {
		i++
	}
	for i < len(clusters) && grapheme.IsSpace(clusters[i].s) {
		i++
	}
	for i < len(clusters) && !grapheme.IsSpace(clusters[i].s) {
		i++
	}
	if i == 0 {
		return 0
	}
	return clusters[i-1].end
}

type clusterSpan struct {
	start, end int
	s          string
}

func clusterSpans(text string) []clusterSpan {
	var out []clusterSpan
	grapheme.ForEach(text, func(o int, cluster string) bool {
		out = append(out, clusterSpan{start: o, end: o + len(cluster), s: cluster})
		return true
	})
	return out
}
