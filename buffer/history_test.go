package buffer

import (
	"testing"
	"time"
)

func TestBuffer_UndoRedo_BasicTyping(t *testing.T) {
	b := New("", Options{})
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
	if b.CanRedo() {
		t.Fatalf("expected CanRedo=false")
	}

	b.InsertText("a")
	if !b.CanUndo() {
		t.Fatalf("expected CanUndo=true")
	}
	if b.CanRedo() {
		t.Fatalf("expected CanRedo=false")
	}

	v := b.Version()
	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if !b.CanRedo() {
		t.Fatalf("expected CanRedo=true")
	}

	v2 := b.Version()
	if _, ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v2+1 {
		t.Fatalf("version=%d, want %d", got, v2+1)
	}
}

func TestBuffer_UndoRedo_EmptyStacks_NoMutation(t *testing.T) {
	b := New("hi", Options{})
	b.SetCursor(1)

	text := b.Text()
	cursor := b.Cursor()
	v := b.Version()

	if _, ok := b.Undo(); ok {
		t.Fatalf("expected Undo=false")
	}
	if _, ok := b.Redo(); ok {
		t.Fatalf("expected Redo=false")
	}

	if got := b.Text(); got != text {
		t.Fatalf("text=%q, want %q", got, text)
	}
	if got := b.Cursor(); got != cursor {
		t.Fatalf("cursor=%d, want %d", got, cursor)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected no selection")
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
}

func TestBuffer_Undo_RestoresCursorAndSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetCursor(4)
	b.SetSelection(Range{Start: 1, End: 4}) // "ell"

	b.InsertText("i")
	if got, want := b.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared after insert")
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection restored")
	}
	if got, want := r, (Range{Start: 1, End: 4}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestBuffer_Undo_RestoresSelectionAnchorDirection(t *testing.T) {
	b := New("abcd", Options{})
	b.SetSelection(Range{Start: 3, End: 1}) // anchor right, active end left

	b.InsertText("X")
	if got, want := b.Text(), "aXd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	raw, ok := b.SelectionRaw()
	if !ok {
		t.Fatalf("expected selection restored")
	}
	if got, want := raw, (Range{Start: 3, End: 1}); got != want {
		t.Fatalf("raw selection=%v, want %v", got, want)
	}
}

func TestBuffer_Undo_CoalescesTypingRun(t *testing.T) {
	b := New("", Options{})
	for _, s := range []string{"h", "e", "l", "l", "o"} {
		b.InsertText(s)
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("one undo must remove the whole typing run, text=%q", got)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false after undoing the run")
	}

	if _, ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 5; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Coalesce_BreaksOnCursorMove(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.InsertText("b")
	b.SetCursor(1)
	b.InsertText("X")

	if got, want := b.Text(), "aXb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Coalesce_BreaksOnWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New("", Options{
		CoalesceWindow: 100 * time.Millisecond,
		Clock:          func() time.Time { return now },
	})

	b.InsertText("a")
	now = now.Add(50 * time.Millisecond)
	b.InsertText("b")
	now = now.Add(150 * time.Millisecond)
	b.InsertText("c")

	if got, want := b.Text(), "abc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("pause must break the run, text=%q want %q", got, want)
	}
	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Coalesce_BackspaceRun(t *testing.T) {
	b := New("hello", Options{})
	b.SetCursor(5)
	for i := 0; i < 5; i++ {
		b.DeleteBackward()
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("one undo must restore the whole deletion run, text=%q", got)
	}
	if got, want := b.Cursor(), 5; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
}

func TestBuffer_Coalesce_DeleteForwardRun(t *testing.T) {
	b := New("hello", Options{})
	b.DeleteForward()
	b.DeleteForward()
	if got, want := b.Text(), "llo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
}

func TestBuffer_Coalesce_NewlineBreaksRun(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.InsertNewline()
	b.InsertText("b")

	if got, want := b.Text(), "a\nb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	for _, want := range []string{"a\n", "a", ""} {
		if _, ok := b.Undo(); !ok {
			t.Fatalf("expected Undo=true")
		}
		if got := b.Text(); got != want {
			t.Fatalf("text=%q, want %q", got, want)
		}
	}
}

func TestBuffer_Coalesce_MixedKindsDoNotMerge(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.DeleteBackward()

	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Undo_ReturnsAppliedEdits(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.InsertText("b")
	b.InsertText("c")

	edits, ok := b.Undo()
	if !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := len(edits), 1; got != want {
		t.Fatalf("edit count=%d, want %d", got, want)
	}
	e := edits[0]
	if got, want := e.RangeBefore, (Range{Start: 0, End: 3}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := e.RangeAfter, (Range{Start: 0, End: 0}); got != want {
		t.Fatalf("range after=%v, want %v", got, want)
	}
	if got, want := e.DeletedText, "abc"; got != want {
		t.Fatalf("deleted=%q, want %q", got, want)
	}

	edits, ok = b.Redo()
	if !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := len(edits), 1; got != want {
		t.Fatalf("edit count=%d, want %d", got, want)
	}
	e = edits[0]
	if got, want := e.RangeBefore, (Range{Start: 0, End: 0}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := e.InsertText, "abc"; got != want {
		t.Fatalf("inserted=%q, want %q", got, want)
	}
}

func TestBuffer_HistoryLimit_BoundsUndoDepth(t *testing.T) {
	b := New("", Options{HistoryLimit: 2})
	b.InsertText("aa")
	b.InsertText("bb")
	b.InsertText("cc")

	if got, want := b.Text(), "aabbcc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "aabb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "aa"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	if _, ok := b.Undo(); ok {
		t.Fatalf("expected Undo=false (history limit reached)")
	}
}

func TestBuffer_HistoryDisabled_RecordsNothing(t *testing.T) {
	b := New("", Options{HistoryLimit: -1})
	b.InsertText("a")
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false with history disabled")
	}
}

func TestBuffer_UndoThenNewEdit_ClearsRedo(t *testing.T) {
	b := New("", Options{})
	b.InsertText("aa")
	b.InsertText("bb")

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if !b.CanRedo() {
		t.Fatalf("expected CanRedo=true")
	}

	b.InsertText("X")
	if b.CanRedo() {
		t.Fatalf("expected CanRedo=false after new edit")
	}
}

func TestBuffer_UndoRedo_DeleteBackward_JoinsLines_Unicode(t *testing.T) {
	b := New("π\nテ", Options{})
	b.SetCursor(3)

	b.DeleteBackward()
	if got, want := b.Text(), "πテ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), "π\nテ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 3; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	if _, ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "πテ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Undo_AfterUndoTypingStartsFreshRun(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.InsertText("b")

	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	// Typing after undo must not merge into anything undone.
	b.InsertText("x")
	b.InsertText("y")
	if got, want := b.Text(), "xy"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
}
