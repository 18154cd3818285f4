package editor

import "github.com/iw2rmb/filigree/buffer"

// ChangeEvent describes the document after a change. Events fire
// synchronously from Update whenever the buffer version moves, so hosts
// see every edit, cursor move, and selection change exactly once.
type ChangeEvent struct {
	DocID   string
	Version uint64

	Cursor    int
	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// Text is the full document; hosts that need deltas can diff against
	// their previous copy.
	Text string
}

func buildChangeEvent(ed *Editor) ChangeEvent {
	ev := ChangeEvent{
		DocID:   ed.ID(),
		Version: ed.buf.Version(),
		Cursor:  ed.buf.Cursor(),
		Text:    ed.buf.Text(),
	}
	if r, ok := ed.buf.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
