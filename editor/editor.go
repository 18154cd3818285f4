package editor

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/iw2rmb/filigree/buffer"
	"github.com/iw2rmb/filigree/syntax"
)

// Editor binds one document to its language: a buffer for text, cursor,
// selection, and history; an incremental parser kept in sync with every
// applied edit; and a viewport cache for highlight queries. All methods
// run on the caller's goroutine.
type Editor struct {
	id     string
	lang   *syntax.Language
	buf    *buffer.Buffer
	parser *syntax.Parser
	cache  *syntax.Cache

	syncErr error
}

// Options configures OpenWith. The zero value is ready to use.
type Options struct {
	// DocID identifies the document in change events. Default: a random
	// UUID.
	DocID string

	// CacheCapacity bounds the highlight cache entry count.
	CacheCapacity int

	// Buffer is forwarded to the underlying buffer. Its OnApply hook, when
	// set, runs after the editor's own bookkeeping.
	Buffer buffer.Options
}

// Open starts an editing session for a document in the given language.
// It returns syntax.ErrUnsupportedLanguage when no grammar is registered
// for the id.
func Open(languageID, text string) (*Editor, error) {
	return OpenWith(languageID, text, Options{})
}

// OpenWith is Open with explicit options.
func OpenWith(languageID, text string, opt Options) (*Editor, error) {
	lang, err := syntax.Lookup(languageID)
	if err != nil {
		return nil, err
	}

	ed := &Editor{
		id:     opt.DocID,
		lang:   lang,
		parser: syntax.NewParser(lang),
		cache:  syntax.NewCache(opt.CacheCapacity),
	}
	if ed.id == "" {
		ed.id = uuid.NewString()
	}

	bufOpt := opt.Buffer
	after := bufOpt.OnApply
	bufOpt.OnApply = func(e buffer.AppliedEdit) {
		ed.syncDerived(e)
		if after != nil {
			after(e)
		}
	}
	ed.buf = buffer.New(text, bufOpt)

	if err := ed.parser.Parse(context.Background(), []byte(text)); err != nil {
		ed.parser.Close()
		return nil, err
	}
	return ed, nil
}

// ID returns the document id.
func (ed *Editor) ID() string { return ed.id }

// Language returns the session's language.
func (ed *Editor) Language() *syntax.Language { return ed.lang }

// Buffer exposes the underlying buffer for cursor, selection, and
// movement. Mutations made through it keep the parser and cache in sync.
func (ed *Editor) Buffer() *buffer.Buffer { return ed.buf }

func (ed *Editor) Text() string { return ed.buf.Text() }

func (ed *Editor) Len() int { return ed.buf.Len() }

func (ed *Editor) LineCount() int { return ed.buf.LineCount() }

// Generation returns the content generation highlight results are stamped
// with.
func (ed *Editor) Generation() uint64 { return ed.buf.Generation() }

// Degraded reports whether the current parse tree contains error nodes.
// A degraded session still answers highlight queries.
func (ed *Editor) Degraded() bool { return ed.parser.Degraded() }

// Close releases the parse tree. The editor must not be used afterwards.
func (ed *Editor) Close() { ed.parser.Close() }

// syncDerived runs inside the buffer's apply hook: re-parse around the
// edit and invalidate the cached highlight ranges its damage touches.
func (ed *Editor) syncDerived(e buffer.AppliedEdit) {
	damage, err := ed.parser.Update(context.Background(), e, []byte(ed.buf.Text()))
	if err != nil {
		ed.syncErr = err
		ed.cache.Reset()
		return
	}
	delta := strings.Count(e.InsertText, "\n") - strings.Count(e.DeletedText, "\n")
	ed.cache.InvalidateEdit(ed.damageLines(damage), delta, ed.buf.Generation())
}

// damageLines converts a byte damage range to the half-open line range it
// touches in the current document.
func (ed *Editor) damageLines(damage buffer.Range) syntax.LineRange {
	start := clampInt(damage.Start, 0, ed.buf.Len())
	end := clampInt(damage.End, 0, ed.buf.Len())
	startLine, _ := ed.buf.LineAt(start)
	endLine := startLine
	if end > start {
		endLine, _ = ed.buf.LineAt(end - 1)
	}
	return syntax.LineRange{Start: startLine, End: endLine + 1}
}

// ApplyEdit replaces the byte range [e.Start, e.End) with e.Text as one
// undoable change. The range is validated against the current document
// before anything mutates: buffer.ErrOutOfBounds for offsets outside it,
// buffer.ErrInvalidBoundary for offsets splitting a code point.
func (ed *Editor) ApplyEdit(e buffer.Edit) (buffer.AppliedEdit, error) {
	applied, _, err := ed.buf.Replace(e.Start, e.End, e.Text)
	return applied, err
}

// Apply applies edits in order as a single undoable change, each edit
// addressed against the document as it stands when that edit applies.
func (ed *Editor) Apply(edits ...buffer.Edit) ([]buffer.AppliedEdit, error) {
	return ed.buf.Apply(edits...)
}

// Undo reverts the newest change, restoring content, cursor, and
// selection. It reports whether anything changed.
func (ed *Editor) Undo() bool {
	_, ok := ed.buf.Undo()
	return ok
}

// Redo re-applies the newest undone change.
func (ed *Editor) Redo() bool {
	_, ok := ed.buf.Redo()
	return ok
}

// SetText replaces the whole document as one undoable change. The
// replacement applies as a minimal diff, so unchanged regions keep their
// parse subtrees and cached highlights.
func (ed *Editor) SetText(text string) error {
	old := ed.buf.Text()
	if old == text {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, text, false)

	edits := make([]buffer.Edit, 0, len(diffs))
	off := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			off += len(d.Text)
		case diffmatchpatch.DiffDelete:
			edits = append(edits, buffer.Edit{Start: off, End: off + len(d.Text)})
		case diffmatchpatch.DiffInsert:
			edits = append(edits, buffer.Edit{Start: off, End: off, Text: d.Text})
			off += len(d.Text)
		}
	}
	_, err := ed.buf.Apply(edits...)
	return err
}

// QueryHighlights returns the ordered, non-overlapping highlight spans
// for lines [startLine, endLine), clipped to that range. Line bounds
// clamp to the document. Repeated queries for an unchanged viewport hit
// the cache; cursor and selection moves never invalidate it.
func (ed *Editor) QueryHighlights(startLine, endLine int) ([]syntax.Span, error) {
	if ed.syncErr != nil {
		return nil, ed.syncErr
	}
	lc := ed.buf.LineCount()
	if startLine < 0 {
		startLine = 0
	}
	if endLine > lc {
		endLine = lc
	}
	if startLine >= endLine {
		return nil, nil
	}

	startOff, _ := ed.buf.LineToOffset(startLine)
	endOff := ed.buf.Len()
	if endLine < lc {
		endOff, _ = ed.buf.LineToOffset(endLine)
	}

	key := syntax.LineRange{Start: startLine, End: endLine}
	spans := ed.cache.GetOrCompute(key, ed.buf.Generation(), func() []syntax.Span {
		return syntax.Highlight(ed.parser.Root(), startOff, endOff, ed.lang)
	})
	return spans, nil
}

// Cursor and selection pass-throughs, so hosts that only hold an *Editor
// can drive the session.

func (ed *Editor) Cursor() int { return ed.buf.Cursor() }

func (ed *Editor) SetCursor(off int) { ed.buf.SetCursor(off) }

func (ed *Editor) Selection() (buffer.Range, bool) { return ed.buf.Selection() }

func (ed *Editor) SetSelection(r buffer.Range) { ed.buf.SetSelection(r) }

func (ed *Editor) SelectWordAt(off int) { ed.buf.SelectWordAt(off) }

func (ed *Editor) SelectLineAt(off int) { ed.buf.SelectLineAt(off) }

func (ed *Editor) SelectAll() { ed.buf.SelectAll() }

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
