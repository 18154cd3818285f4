package buffer

import (
	"errors"
	"testing"
)

func TestBuffer_New_EmptyDocument(t *testing.T) {
	b := New("", Options{})
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Len(), 0; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, want := b.LineCount(), 1; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})
	if b.Version() != 0 {
		t.Fatalf("expected version 0, got %d", b.Version())
	}
	if b.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", b.Generation())
	}

	b.SetCursor(999)
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}
	if b.Generation() != 0 {
		t.Fatalf("expected generation unchanged, got %d", b.Generation())
	}

	b.SetCursor(4)
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}

	b.SetCursor(-7)
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_SetCursor_SnapsInsideCodePoint(t *testing.T) {
	b := New("aπb", Options{}) // π occupies bytes 1..2

	b.SetCursor(2)
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	b.SetCursor(3)
	if got, want := b.Cursor(), 3; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_SetSelection_NormalizesClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})

	b.SetSelection(Range{Start: 99, End: -1})
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection active")
	}
	if got, want := r, (Range{Start: 0, End: 4}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}
	if b.Generation() != 0 {
		t.Fatalf("expected generation unchanged, got %d", b.Generation())
	}

	// Same effective selection should not bump the version.
	b.SetSelection(Range{Start: 4, End: 0})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_SetSelection_EmptyBecomesInactive(t *testing.T) {
	b := New("abc", Options{})
	b.SetSelection(Range{Start: 2, End: 2})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected no selection for empty range")
	}
}

func TestBuffer_SelectionRaw_KeepsDirection(t *testing.T) {
	b := New("abcd", Options{})
	b.SetSelection(Range{Start: 3, End: 1})

	r, ok := b.Selection()
	if !ok || r != (Range{Start: 1, End: 3}) {
		t.Fatalf("selection=%v ok=%v, want (1,3) true", r, ok)
	}
	raw, ok := b.SelectionRaw()
	if !ok || raw != (Range{Start: 3, End: 1}) {
		t.Fatalf("raw selection=%v ok=%v, want (3,1) true", raw, ok)
	}
}

func TestBuffer_ClearSelection_Versions(t *testing.T) {
	b := New("abc", Options{})
	b.SetSelection(Range{Start: 0, End: 2})
	v := b.Version()

	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected no selection")
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}

	b.ClearSelection()
	if got := b.Version(); got != v+1 {
		t.Fatalf("expected version unchanged, got %d", got)
	}
}

func TestBuffer_IsBoundary(t *testing.T) {
	b := New("aπ", Options{}) // bytes: a=0, π=1..2
	cases := []struct {
		off  int
		want bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, false},
		{3, true},
		{4, false},
	}
	for _, tc := range cases {
		if got := b.IsBoundary(tc.off); got != tc.want {
			t.Fatalf("IsBoundary(%d)=%v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := New("hello\nworld", Options{})

	s, err := b.Slice(3, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := s, "lo\nwo"; got != want {
		t.Fatalf("slice=%q, want %q", got, want)
	}

	if _, err := b.Slice(-1, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Slice(4, 99); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Slice(5, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for reversed range, got %v", err)
	}
}

func TestBuffer_Slice_RejectsSplitCodePoint(t *testing.T) {
	b := New("aπb", Options{})
	if _, err := b.Slice(0, 2); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("expected ErrInvalidBoundary, got %v", err)
	}
	if _, err := b.Slice(2, 3); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("expected ErrInvalidBoundary, got %v", err)
	}
}

func TestBuffer_LineToOffset(t *testing.T) {
	b := New("ab\ncde\n\nf", Options{})
	cases := []struct {
		line int
		want int
	}{
		{0, 0},
		{1, 3},
		{2, 7},
		{3, 8},
		{4, 9}, // == LineCount(): end of document
	}
	for _, tc := range cases {
		got, err := b.LineToOffset(tc.line)
		if err != nil {
			t.Fatalf("LineToOffset(%d): unexpected error %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("LineToOffset(%d)=%d, want %d", tc.line, got, tc.want)
		}
	}

	if _, err := b.LineToOffset(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.LineToOffset(5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestBuffer_LineRange_ExcludesNewline(t *testing.T) {
	b := New("ab\ncde\n\nf", Options{})
	cases := []struct {
		line int
		want Range
	}{
		{0, Range{Start: 0, End: 2}},
		{1, Range{Start: 3, End: 6}},
		{2, Range{Start: 7, End: 7}},
		{3, Range{Start: 8, End: 9}},
	}
	for _, tc := range cases {
		got, err := b.LineRange(tc.line)
		if err != nil {
			t.Fatalf("LineRange(%d): unexpected error %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("LineRange(%d)=%v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestBuffer_LineText(t *testing.T) {
	b := New("ab\ncde\n\nf", Options{})
	want := []string{"ab", "cde", "", "f"}
	for line, w := range want {
		got, err := b.LineText(line)
		if err != nil {
			t.Fatalf("LineText(%d): unexpected error %v", line, err)
		}
		if got != w {
			t.Fatalf("LineText(%d)=%q, want %q", line, got, w)
		}
	}
}

func TestBuffer_LineAt(t *testing.T) {
	b := New("ab\ncde\n\nf", Options{})
	cases := []struct {
		off  int
		want int
	}{
		{0, 0},
		{2, 0}, // the newline belongs to the line it ends
		{3, 1},
		{6, 1},
		{7, 2},
		{8, 3},
		{9, 3},
	}
	for _, tc := range cases {
		got, err := b.LineAt(tc.off)
		if err != nil {
			t.Fatalf("LineAt(%d): unexpected error %v", tc.off, err)
		}
		if got != tc.want {
			t.Fatalf("LineAt(%d)=%d, want %d", tc.off, got, tc.want)
		}
	}
}

func TestBuffer_LineCount_TrailingNewline(t *testing.T) {
	if got, want := New("a\n", Options{}).LineCount(), 2; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	if got, want := New("\n\n", Options{}).LineCount(), 3; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
}
