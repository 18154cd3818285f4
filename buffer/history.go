package buffer

import (
	"time"
	"unicode/utf8"
)

type editKind uint8

const (
	editOther editKind = iota
	editInsertChar
	editDeleteBackChar
	editDeleteFwdChar
)

type historyState struct {
	undo []Change
	redo []Change

	// Coalescing run state. lastKind/lastAt describe the newest undo entry;
	// runOpen is cleared by cursor jumps, selection changes, transactions,
	// and undo/redo, ending the run.
	runOpen  bool
	lastKind editKind
	lastAt   time.Time
}

func (h *historyState) breakRun() {
	h.runOpen = false
	h.lastKind = editOther
}

// recordChange pushes one undoable change, merging it into the previous
// entry when it continues a single-character typing or deletion run.
// Recording always clears the redo stack.
func (b *Buffer) recordChange(c Change, kind editKind, now time.Time) {
	h := &b.hist
	h.redo = nil

	if b.opt.HistoryLimit <= 0 {
		h.breakRun()
		return
	}

	if h.runOpen && kind != editOther && kind == h.lastKind && len(h.undo) > 0 &&
		b.withinCoalesceWindow(now, h.lastAt) {
		prev := &h.undo[len(h.undo)-1]
		if mergeChange(prev, c, kind) {
			h.lastAt = now
			return
		}
	}

	h.undo = append(h.undo, c)
	if len(h.undo) > b.opt.HistoryLimit {
		h.undo = h.undo[len(h.undo)-b.opt.HistoryLimit:]
	}
	h.runOpen = kind != editOther
	h.lastKind = kind
	h.lastAt = now
}

func (b *Buffer) withinCoalesceWindow(now, last time.Time) bool {
	if b.opt.CoalesceWindow < 0 {
		return true
	}
	return now.Sub(last) <= b.opt.CoalesceWindow
}

// mergeChange folds next into prev when both are single-edit changes whose
// edits are contiguous and the cursor did not move in between.
func mergeChange(prev *Change, next Change, kind editKind) bool {
	if len(prev.Edits) != 1 || len(next.Edits) != 1 {
		return false
	}
	if prev.CursorAfter != next.CursorBefore {
		return false
	}
	pe := &prev.Edits[0]
	ne := next.Edits[0]

	switch kind {
	case editInsertChar:
		if ne.RangeBefore.Start != pe.RangeAfter.End {
			return false
		}
		pe.InsertText += ne.InsertText
		pe.RangeAfter.End += len(ne.InsertText)
		pe.NewEndPoint = ne.NewEndPoint
	case editDeleteBackChar:
		if ne.RangeBefore.End != pe.RangeBefore.Start {
			return false
		}
		pe.DeletedText = ne.DeletedText + pe.DeletedText
		pe.RangeBefore.Start = ne.RangeBefore.Start
		pe.RangeAfter = ne.RangeAfter
		pe.StartPoint = ne.StartPoint
	case editDeleteFwdChar:
		if ne.RangeBefore.Start != pe.RangeBefore.Start {
			return false
		}
		pe.DeletedText += ne.DeletedText
		pe.RangeBefore.End += len(ne.DeletedText)
		// Coalesced runs never span newlines, so the merged old end stays
		// on the starting row.
		pe.OldEndPoint = Point{Row: pe.StartPoint.Row, Col: pe.StartPoint.Col + pe.RangeBefore.Len()}
	default:
		return false
	}

	prev.CursorAfter = next.CursorAfter
	prev.SelectionAfter = next.SelectionAfter
	prev.VersionAfter = next.VersionAfter
	return true
}

// classifyEdit picks the coalescing kind for a just-applied single edit.
func classifyEdit(e AppliedEdit, cursorBefore int) editKind {
	switch {
	case e.RangeBefore.IsEmpty() && singleNonNewlineRune(e.InsertText):
		return editInsertChar
	case e.InsertText == "" && singleNonNewlineRune(e.DeletedText):
		if e.RangeBefore.Start == cursorBefore {
			return editDeleteFwdChar
		}
		if e.RangeBefore.End == cursorBefore {
			return editDeleteBackChar
		}
		return editOther
	default:
		return editOther
	}
}

func singleNonNewlineRune(s string) bool {
	if s == "" || s == "\n" || s == "\r" {
		return false
	}
	return utf8.RuneCountInString(s) == 1
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo reverts the newest recorded change and moves it to the redo stack.
// It returns the edits applied to revert, newest recorded edit first, with
// point data freshly computed for the current document.
func (b *Buffer) Undo() ([]AppliedEdit, bool) {
	h := &b.hist
	if len(h.undo) == 0 {
		return nil, false
	}
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.breakRun()

	applied := make([]AppliedEdit, 0, len(c.Edits))
	for i := len(c.Edits) - 1; i >= 0; i-- {
		inv := c.Edits[i].Inverse()
		applied = append(applied, b.splice(Edit{
			Start: inv.RangeBefore.Start,
			End:   inv.RangeBefore.End,
			Text:  inv.InsertText,
		}))
	}

	b.cursor = c.CursorBefore
	b.sel = internalSelectionState(c.SelectionBefore)
	b.version++

	h.redo = append(h.redo, c)
	return applied, true
}

// Redo re-applies the newest undone change and moves it back to the undo
// stack. Like Undo, it returns the edits as applied now.
func (b *Buffer) Redo() ([]AppliedEdit, bool) {
	h := &b.hist
	if len(h.redo) == 0 {
		return nil, false
	}
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.breakRun()

	applied := make([]AppliedEdit, 0, len(c.Edits))
	for _, e := range c.Edits {
		applied = append(applied, b.splice(Edit{
			Start: e.RangeBefore.Start,
			End:   e.RangeBefore.End,
			Text:  e.InsertText,
		}))
	}

	b.cursor = c.CursorAfter
	b.sel = internalSelectionState(c.SelectionAfter)
	b.version++

	if b.opt.HistoryLimit > 0 {
		h.undo = append(h.undo, c)
		if len(h.undo) > b.opt.HistoryLimit {
			h.undo = h.undo[len(h.undo)-b.opt.HistoryLimit:]
		}
	}
	return applied, true
}

func internalSelectionState(s SelectionState) selectionState {
	if !s.Active || s.Range.IsEmpty() {
		return selectionState{}
	}
	// Start carries the anchor, End the active end.
	return selectionState{active: true, anchor: s.Range.Start, end: s.Range.End}
}
