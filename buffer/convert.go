package buffer

import (
	"unicode/utf8"

	"github.com/iw2rmb/filigree/internal/grapheme"
)

// Coordinate conversions between the native byte offsets, (line, rune-col)
// pairs, and visual columns.
//
// Visual columns measure terminal cells from the line start: combining
// marks add 0, wide CJK-class glyphs add 2, tabs advance to the next
// multiple of tabWidth, everything else adds 1.

// VisualWidth returns the cell width of one grapheme cluster drawn at
// visual column col.
func VisualWidth(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - col%tabWidth
	}
	return grapheme.Width(cluster)
}

// OffsetToLineCol converts a byte offset to its (line, column) position
// with the column counted in runes.
func (b *Buffer) OffsetToLineCol(off int) (LineCol, error) {
	if err := b.checkOffset(off); err != nil {
		return LineCol{}, err
	}
	p := b.pointAt(off)
	text, err := b.LineText(p.Row)
	if err != nil {
		return LineCol{}, err
	}
	return LineCol{Line: p.Row, Col: utf8.RuneCountInString(text[:p.Col])}, nil
}

// LineColToOffset converts a (line, rune-column) position to a byte
// offset. Col must address a rune of the line or its end.
func (b *Buffer) LineColToOffset(lc LineCol) (int, error) {
	start, err := b.LineToOffset(lc.Line)
	if err != nil || lc.Line == b.LineCount() {
		if err == nil && lc.Col != 0 {
			err = ErrOutOfBounds
		}
		return start, err
	}
	text, _ := b.LineText(lc.Line)
	if lc.Col < 0 {
		return 0, ErrOutOfBounds
	}
	col := 0
	for i := range text {
		if col == lc.Col {
			return start + i, nil
		}
		col++
	}
	if col == lc.Col {
		return start + len(text), nil
	}
	return 0, ErrOutOfBounds
}

// VisualCol returns the visual column at which the cluster starting at off
// is drawn. off must lie on a cluster boundary within the line holding it.
func (b *Buffer) VisualCol(off, tabWidth int) (int, error) {
	if err := b.checkOffset(off); err != nil {
		return 0, err
	}
	p := b.pointAt(off)
	text, err := b.LineText(p.Row)
	if err != nil {
		return 0, err
	}
	col := 0
	grapheme.ForEach(text, func(o int, cluster string) bool {
		if o >= p.Col {
			return false
		}
		col += VisualWidth(cluster, col, tabWidth)
		return true
	})
	return col, nil
}

// OffsetAtVisualCol returns the byte offset for a visual column on a line,
// resolving positions inside a multi-cell cluster (tab, wide glyph) to the
// nearer edge. Columns past the line end map to the line end.
func (b *Buffer) OffsetAtVisualCol(line, vcol, tabWidth int) (int, error) {
	lr, err := b.LineRange(line)
	if err != nil {
		return 0, err
	}
	if vcol <= 0 {
		return lr.Start, nil
	}
	text, _ := b.LineText(line)

	off := lr.End
	col := 0
	grapheme.ForEach(text, func(o int, cluster string) bool {
		w := VisualWidth(cluster, col, tabWidth)
		if vcol < col+w {
			// Inside this cluster: round toward the clicked side.
			if (vcol-col)*2 >= w {
				off = lr.Start + o + len(cluster)
			} else {
				off = lr.Start + o
			}
			return false
		}
		col += w
		if vcol == col {
			off = lr.Start + o + len(cluster)
			return false
		}
		return true
	})
	return off, nil
}
