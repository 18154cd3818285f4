package buffer

// SelectionState captures selection state at a point in time. Range keeps
// the anchor at Start and the active end at End, so selection direction
// survives a round-trip through history.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective mutation. RangeBefore addresses the
// document before the edit, RangeAfter after it. DeletedText is the text
// that RangeBefore held; it is captured when the edit applies, so the
// inverse edit does not depend on later document state.
//
// The three points carry the coordinates an incremental parser needs:
// StartPoint and OldEndPoint are positions in the old document, NewEndPoint
// in the new one.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string

	StartPoint  Point
	OldEndPoint Point
	NewEndPoint Point
}

// Delta returns the signed change in document length.
func (e AppliedEdit) Delta() int {
	return len(e.InsertText) - len(e.DeletedText)
}

// Inverse returns the edit that puts the document back: it replaces
// RangeAfter with the deleted text. Point fields are swapped to match.
func (e AppliedEdit) Inverse() AppliedEdit {
	return AppliedEdit{
		RangeBefore: e.RangeAfter,
		RangeAfter:  e.RangeBefore,
		InsertText:  e.DeletedText,
		DeletedText: e.InsertText,
		StartPoint:  e.StartPoint,
		OldEndPoint: e.NewEndPoint,
		NewEndPoint: e.OldEndPoint,
	}
}

// Change is one undoable unit: the edits applied plus the cursor and
// selection on both sides. A Change may hold several edits when they were
// grouped in a transaction (indent, toggle-comment, replace-all).
type Change struct {
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    int
	CursorAfter     int
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	Edits           []AppliedEdit
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active || sel.anchor == sel.end {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: Range{Start: sel.anchor, End: sel.end}}
}

// transformOffset maps a document offset across one applied edit.
// Offsets before the replaced range keep their position, offsets at or past
// its old end shift by the length delta, and offsets inside the replaced
// range collapse to its start.
func transformOffset(off int, e AppliedEdit) int {
	switch {
	case off < e.RangeBefore.Start:
		return off
	case off >= e.RangeBefore.End:
		return off + e.Delta()
	default:
		return e.RangeBefore.Start
	}
}

// transformSelection maps cursor and selection state across one edit.
func (b *Buffer) transformSelection(e AppliedEdit) {
	b.cursor = transformOffset(b.cursor, e)
	if b.sel.active {
		b.sel.anchor = transformOffset(b.sel.anchor, e)
		b.sel.end = transformOffset(b.sel.end, e)
		if b.sel.anchor == b.sel.end {
			b.sel = selectionState{}
		}
	}
}
