package editor

import (
	"strings"

	"github.com/iw2rmb/filigree/buffer"
)

// Line-wise editing actions on top of the buffer primitives. Multi-line
// actions batch their edits through Apply so each lands as one undoable
// change, with edits ordered bottom-up to keep earlier offsets stable.

// Copy returns the text a copy should put on the clipboard: the selection
// when one is active, otherwise the whole cursor line including its line
// break.
func (ed *Editor) Copy() (string, bool) {
	if r, ok := ed.buf.Selection(); ok {
		s, err := ed.buf.Slice(r.Start, r.End)
		if err != nil {
			return "", false
		}
		return s, true
	}
	line, _ := ed.buf.LineAt(ed.buf.Cursor())
	text, err := ed.buf.LineText(line)
	if err != nil {
		return "", false
	}
	return text + "\n", true
}

// Cut is Copy followed by deleting what was copied: the selection, or the
// whole cursor line.
func (ed *Editor) Cut() (string, bool) {
	s, ok := ed.Copy()
	if !ok {
		return "", false
	}
	if _, active := ed.buf.Selection(); active {
		ed.buf.DeleteSelection()
	} else {
		ed.DeleteLine()
	}
	return s, true
}

// Paste inserts text at the cursor, replacing the selection if any. With
// no selection, a payload ending in a line break pastes as whole lines
// above the cursor line, matching what Copy produces for a collapsed
// cursor.
func (ed *Editor) Paste(text string) {
	if text == "" {
		return
	}
	text = normalizeNewlines(text)
	if _, active := ed.buf.Selection(); !active && strings.HasSuffix(text, "\n") {
		line, _ := ed.buf.LineAt(ed.buf.Cursor())
		start, _ := ed.buf.LineToOffset(line)
		ed.buf.Insert(start, text)
		return
	}
	ed.buf.InsertText(text)
}

// IndentSelection inserts one indent unit at the start of every non-blank
// line the selection touches, or the cursor line when collapsed.
func (ed *Editor) IndentSelection() {
	unit := ed.indentUnit()
	first, last := ed.lineSpan()

	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		text, _ := ed.buf.LineText(line)
		if text == "" {
			continue
		}
		start, _ := ed.buf.LineToOffset(line)
		edits = append(edits, buffer.Edit{Start: start, End: start, Text: unit})
	}
	ed.buf.Apply(edits...)
}

// UnindentSelection removes one leading indent unit from every line the
// selection touches: the language's unit when present, otherwise a single
// tab or the run of leading spaces up to the unit's width.
func (ed *Editor) UnindentSelection() {
	unit := ed.indentUnit()
	first, last := ed.lineSpan()

	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		text, _ := ed.buf.LineText(line)
		n := unindentWidth(text, unit)
		if n == 0 {
			continue
		}
		start, _ := ed.buf.LineToOffset(line)
		edits = append(edits, buffer.Edit{Start: start, End: start + n})
	}
	ed.buf.Apply(edits...)
}

// ToggleComment adds or removes the language line-comment prefix on the
// covered lines, after their leading whitespace. When every non-blank
// line already carries the prefix the block uncomments; any uncommented
// line comments the whole block out. Languages without a line comment
// leave the text untouched.
func (ed *Editor) ToggleComment() {
	prefix := ed.lang.CommentPrefix
	if prefix == "" {
		return
	}
	first, last := ed.lineSpan()

	allCommented := true
	anyContent := false
	for line := first; line <= last; line++ {
		text, _ := ed.buf.LineText(line)
		trimmed := strings.TrimLeft(text, " \t")
		if trimmed == "" {
			continue
		}
		anyContent = true
		if !strings.HasPrefix(trimmed, prefix) {
			allCommented = false
			break
		}
	}
	if !anyContent {
		return
	}

	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		text, _ := ed.buf.LineText(line)
		indent := len(text) - len(strings.TrimLeft(text, " \t"))
		trimmed := text[indent:]
		if trimmed == "" {
			continue
		}
		start, _ := ed.buf.LineToOffset(line)
		at := start + indent
		if allCommented {
			n := len(prefix)
			if strings.HasPrefix(trimmed[n:], " ") {
				n++
			}
			edits = append(edits, buffer.Edit{Start: at, End: at + n})
		} else {
			edits = append(edits, buffer.Edit{Start: at, End: at, Text: prefix + " "})
		}
	}
	ed.buf.Apply(edits...)
}

// DuplicateLine copies the cursor line below itself. The cursor moves to
// the copy, keeping its column.
func (ed *Editor) DuplicateLine() {
	line, _ := ed.buf.LineAt(ed.buf.Cursor())
	text, _ := ed.buf.LineText(line)
	start, _ := ed.buf.LineToOffset(line)
	ed.buf.Apply(buffer.Edit{Start: start, End: start, Text: text + "\n"})
}

// DeleteLine removes the cursor line including its line break. On the
// last line the preceding break goes instead, so the document shrinks by
// exactly one line.
func (ed *Editor) DeleteLine() {
	line, _ := ed.buf.LineAt(ed.buf.Cursor())
	lr, _ := ed.buf.LineRange(line)
	start, end := lr.Start, lr.End
	if end < ed.buf.Len() {
		end++
	} else if start > 0 {
		start--
	}
	if start == end {
		return
	}
	ed.buf.Apply(buffer.Edit{Start: start, End: end})
}

// lineSpan returns the inclusive line numbers the selection covers, or
// the cursor line when collapsed. A selection ending at a line start does
// not count that line.
func (ed *Editor) lineSpan() (int, int) {
	r, ok := ed.buf.Selection()
	if !ok {
		line, _ := ed.buf.LineAt(ed.buf.Cursor())
		return line, line
	}
	first, _ := ed.buf.LineAt(r.Start)
	last, _ := ed.buf.LineAt(r.End)
	if last > first {
		if start, _ := ed.buf.LineToOffset(last); start == r.End {
			last--
		}
	}
	return first, last
}

func (ed *Editor) indentUnit() string {
	if ed.lang.Indent != "" {
		return ed.lang.Indent
	}
	return "\t"
}

func unindentWidth(text, unit string) int {
	if strings.HasPrefix(text, unit) {
		return len(unit)
	}
	if strings.HasPrefix(text, "\t") {
		return 1
	}
	n := 0
	for n < len(text) && n < len(unit) && text[n] == ' ' {
		n++
	}
	return n
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
