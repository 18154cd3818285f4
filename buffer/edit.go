package buffer

import (
	"github.com/iw2rmb/filigree/internal/grapheme"
	"github.com/iw2rmb/filigree/internal/rope"
)

// splice performs the raw content mutation for one edit: point capture,
// rope surgery, generation bump. No validation, no history, no cursor or
// selection updates.
func (b *Buffer) splice(e Edit) AppliedEdit {
	applied := AppliedEdit{
		RangeBefore: Range{Start: e.Start, End: e.End},
		RangeAfter:  Range{Start: e.Start, End: e.Start + len(e.Text)},
		InsertText:  e.Text,
		DeletedText: rope.Slice(b.content, e.Start, e.End),
		StartPoint:  b.pointAt(e.Start),
		OldEndPoint: b.pointAt(e.End),
	}

	if e.End > e.Start {
		b.content = rope.Delete(b.content, e.Start, e.End)
	}
	if e.Text != "" {
		b.content = rope.Insert(b.content, e.Start, rope.New(e.Text))
	}
	applied.NewEndPoint = b.pointAt(applied.RangeAfter.End)

	b.generation++
	if b.opt.OnApply != nil {
		b.opt.OnApply(applied)
	}
	return applied
}

// applyEdit mutates content and moves cursor and selection with it. When
// follow is true the cursor lands at the end of the inserted text (typing
// semantics); otherwise it translates like any other offset.
func (b *Buffer) applyEdit(e Edit, follow bool) (AppliedEdit, bool) {
	if rope.Slice(b.content, e.Start, e.End) == e.Text {
		return AppliedEdit{}, false
	}
	applied := b.splice(e)
	b.transformSelection(applied)
	if follow {
		b.cursor = applied.RangeAfter.End
		b.sel = selectionState{}
	}
	b.version++
	return applied, true
}

// edit is the shared validated entry point for public mutations.
func (b *Buffer) edit(e Edit, follow bool) (AppliedEdit, bool, error) {
	if err := b.checkRange(e.Start, e.End); err != nil {
		return AppliedEdit{}, false, err
	}

	if b.tx != nil {
		applied, changed := b.applyEdit(e, follow)
		if changed {
			b.tx.edits = append(b.tx.edits, applied)
		}
		return applied, changed, nil
	}

	now := b.opt.Clock()
	cursorBefore := b.cursor
	selBefore := selectionStateFromInternal(b.sel)
	versionBefore := b.version

	applied, changed := b.applyEdit(e, follow)
	if !changed {
		return applied, false, nil
	}

	b.recordChange(Change{
		VersionBefore:   versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: selBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		Edits:           []AppliedEdit{applied},
	}, classifyEdit(applied, cursorBefore), now)
	return applied, true, nil
}

// Replace substitutes the text in [start, end) with text. The range must
// lie inside the document on code point boundaries; a malformed range is
// rejected outright so the recorded inverse stays exact.
func (b *Buffer) Replace(start, end int, text string) (AppliedEdit, bool, error) {
	return b.edit(Edit{Start: start, End: end, Text: text}, true)
}

// Insert inserts text at offset off.
func (b *Buffer) Insert(off int, text string) (AppliedEdit, bool, error) {
	return b.edit(Edit{Start: off, End: off, Text: text}, true)
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end int) (AppliedEdit, bool, error) {
	return b.edit(Edit{Start: start, End: end}, true)
}

// InsertText inserts at the cursor, replacing the active selection if any.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.Replace(r.Start, r.End, s)
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// InsertNewlineIndented inserts a line break that inherits the leading
// whitespace of the current line, as one undoable edit.
func (b *Buffer) InsertNewlineIndented() {
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	line, _ := b.LineAt(r.Start)
	lr, _ := b.LineRange(line)
	text, _ := b.LineText(line)

	prefix := text
	if r.Start-lr.Start < len(text) {
		prefix = text[:r.Start-lr.Start]
	}
	b.Replace(r.Start, r.End, "\n"+leadingIndent(prefix))
}

// DeleteBackward applies backspace semantics: delete the selection, or the
// grapheme cluster (or line break) before the cursor.
func (b *Buffer) DeleteBackward() {
	if r, ok := b.Selection(); ok {
		b.Delete(r.Start, r.End)
		return
	}
	if b.cursor == 0 {
		return
	}
	b.Delete(b.prevBoundary(b.cursor), b.cursor)
}

// DeleteForward applies the delete-key semantics: delete the selection, or
// the grapheme cluster (or line break) after the cursor.
func (b *Buffer) DeleteForward() {
	if r, ok := b.Selection(); ok {
		b.Delete(r.Start, r.End)
		return
	}
	if b.cursor == b.Len() {
		return
	}
	b.Delete(b.cursor, b.nextBoundary(b.cursor))
}

// DeleteSelection removes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	if r, ok := b.Selection(); ok {
		b.Delete(r.Start, r.End)
	}
}

// prevBoundary returns the start of the grapheme cluster ending at off,
// or off-1 when off sits at a line start (crossing the newline).
func (b *Buffer) prevBoundary(off int) int {
	line, _ := b.LineAt(off)
	lr, _ := b.LineRange(line)
	if off == lr.Start {
		return off - 1
	}
	text, _ := b.LineText(line)
	last := lr.Start
	grapheme.ForEach(text[:off-lr.Start], func(o int, cluster string) bool {
		last = lr.Start + o
		return true
	})
	return last
}

// nextBoundary returns the end of the grapheme cluster starting at off,
// or off+1 when off sits at a line end (crossing the newline).
func (b *Buffer) nextBoundary(off int) int {
	line, _ := b.LineAt(off)
	lr, _ := b.LineRange(line)
	if off >= lr.End {
		return off + 1
	}
	text, _ := b.LineText(line)
	next := lr.End
	grapheme.ForEach(text[off-lr.Start:], func(o int, cluster string) bool {
		next = off + len(cluster)
		return false
	})
	return next
}

// leadingIndent returns the run of spaces and tabs at the start of text.
func leadingIndent(text string) string {
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return text[:i]
}
