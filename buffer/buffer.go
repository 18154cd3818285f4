package buffer

import (
	"time"

	"github.com/iw2rmb/filigree/internal/rope"
)

type Options struct {
	HistoryLimit int // max undo entries; default: 1000

	// CoalesceWindow bounds how long a run of single-character edits keeps
	// merging into one undo entry. Zero means the default; negative disables
	// time-based coalescing (contiguity still applies).
	CoalesceWindow time.Duration

	// Clock supplies the current time for coalescing. Default: time.Now.
	Clock func() time.Time

	// OnApply observes every content mutation as it lands, including the
	// splices undo and redo perform, in application order. The callback
	// runs with the content already updated and must not mutate the
	// buffer. Derived state (parse trees, highlight caches) hangs off
	// this hook.
	OnApply func(AppliedEdit)
}

const (
	defaultHistoryLimit   = 1000
	defaultCoalesceWindow = 500 * time.Millisecond
)

func (o Options) normalized() Options {
	if o.HistoryLimit == 0 {
		o.HistoryLimit = defaultHistoryLimit
	}
	if o.CoalesceWindow == 0 {
		o.CoalesceWindow = defaultCoalesceWindow
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

type selectionState struct {
	active bool
	anchor int
	end    int
}

// Buffer is the document state: text, cursor, selection, and edit history.
//
// Text is addressed by byte offset. Storage is a rope, so edits and line
// lookups stay logarithmic in document size.
type Buffer struct {
	content rope.Rope

	// version changes on every observable state change, including cursor
	// and selection moves. generation changes only when text changes; cached
	// derived state (parse trees, highlight spans) keys against it.
	version    uint64
	generation uint64

	cursor int
	sel    selectionState

	opt  Options
	hist historyState
	tx   *txState
}

func New(text string, opt Options) *Buffer {
	return &Buffer{
		content: rope.New(text),
		opt:     opt.normalized(),
	}
}

func (b *Buffer) Text() string { return b.content.String() }

// Len returns the document length in bytes.
func (b *Buffer) Len() int { return b.content.Len() }

func (b *Buffer) Version() uint64 { return b.version }

// Generation returns the content-only version counter.
func (b *Buffer) Generation() uint64 { return b.generation }

// LineCount returns the number of lines. An empty document has one line.
func (b *Buffer) LineCount() int { return b.content.Newlines() + 1 }

func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor to off, clamped into the document and snapped
// to the nearest code point boundary on the left.
func (b *Buffer) SetCursor(off int) {
	next := b.snap(clampInt(off, 0, b.Len()))
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.hist.breakRun()
	b.version++
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the raw anchor/active pair without normalization, so
// callers that care about selection direction (shift+click) can keep it.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

func (b *Buffer) SetSelection(r Range) {
	next := selectionState{
		active: true,
		anchor: b.snap(clampInt(r.Start, 0, b.Len())),
		end:    b.snap(clampInt(r.End, 0, b.Len())),
	}
	if next.anchor == next.end {
		next = selectionState{}
	}
	b.setSelectionState(next)
}

func (b *Buffer) ClearSelection() {
	b.setSelectionState(selectionState{})
}

func (b *Buffer) setSelectionState(next selectionState) {
	if selectionStateEqual(b.sel, next) {
		b.sel = next
		return
	}
	b.sel = next
	b.hist.breakRun()
	b.version++
}

func selectionStateEqual(a, c selectionState) bool {
	if !a.active && !c.active {
		return true
	}
	return a.active == c.active && a.anchor == c.anchor && a.end == c.end
}

// IsBoundary reports whether off lies on a UTF-8 code point boundary.
// 0 and Len() are always boundaries.
func (b *Buffer) IsBoundary(off int) bool {
	if off < 0 || off > b.Len() {
		return false
	}
	if off == 0 || off == b.Len() {
		return true
	}
	return rope.IndexByteAt(b.content, off)&0xC0 != 0x80
}

// snap moves off left to the nearest code point boundary.
func (b *Buffer) snap(off int) int {
	for off > 0 && !b.IsBoundary(off) {
		off--
	}
	return off
}

func (b *Buffer) checkOffset(off int) error {
	if off < 0 || off > b.Len() {
		return ErrOutOfBounds
	}
	if !b.IsBoundary(off) {
		return ErrInvalidBoundary
	}
	return nil
}

func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || end < start || end > b.Len() {
		return ErrOutOfBounds
	}
	if !b.IsBoundary(start) || !b.IsBoundary(end) {
		return ErrInvalidBoundary
	}
	return nil
}

// Slice returns the text of bytes [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return rope.Slice(b.content, start, end), nil
}

// LineToOffset returns the byte offset of the first byte of line.
// line may equal LineCount(), addressing the end of the document.
func (b *Buffer) LineToOffset(line int) (int, error) {
	switch {
	case line < 0 || line > b.LineCount():
		return 0, ErrOutOfBounds
	case line == 0:
		return 0, nil
	case line == b.LineCount():
		return b.Len(), nil
	default:
		return rope.OffsetAfterNewline(b.content, line-1), nil
	}
}

// LineRange returns the byte range of line excluding its trailing newline.
func (b *Buffer) LineRange(line int) (Range, error) {
	if line < 0 || line >= b.LineCount() {
		return Range{}, ErrOutOfBounds
	}
	start, _ := b.LineToOffset(line)
	end := b.Len()
	if line+1 < b.LineCount() {
		next, _ := b.LineToOffset(line + 1)
		end = next - 1
	}
	return Range{Start: start, End: end}, nil
}

// LineText returns the text of line without its trailing newline.
func (b *Buffer) LineText(line int) (string, error) {
	r, err := b.LineRange(line)
	if err != nil {
		return "", err
	}
	return rope.Slice(b.content, r.Start, r.End), nil
}

// LineAt returns the 0-based line number containing off.
func (b *Buffer) LineAt(off int) (int, error) {
	if off < 0 || off > b.Len() {
		return 0, ErrOutOfBounds
	}
	return rope.NewlinesBefore(b.content, off), nil
}

func (b *Buffer) pointAt(off int) Point {
	row := rope.NewlinesBefore(b.content, off)
	lineStart := 0
	if row > 0 {
		lineStart = rope.OffsetAfterNewline(b.content, row-1)
	}
	return Point{Row: row, Col: off - lineStart}
}
