package buffer

import "github.com/iw2rmb/filigree/internal/grapheme"

// CollapseTo clears the selection and puts the cursor at off.
func (b *Buffer) CollapseTo(off int) {
	b.ClearSelection()
	b.SetCursor(off)
}

// ExtendTo grows the selection from its anchor (or the cursor, when no
// selection is active) to off, and moves the cursor there.
func (b *Buffer) ExtendTo(off int) {
	anchor := b.cursor
	if b.sel.active {
		anchor = b.sel.anchor
	}
	off = b.snap(clampInt(off, 0, b.Len()))
	b.SetSelection(Range{Start: anchor, End: off})
	b.SetCursor(off)
}

// Select sets the selection to the anchor/active pair and moves the cursor
// to the active end.
func (b *Buffer) Select(anchor, active int) {
	b.SetSelection(Range{Start: anchor, End: active})
	b.SetCursor(active)
}

// SelectWordAt selects the run containing off: a word run (letters,
// digits, underscore), a whitespace run, or a single cluster otherwise.
// The newline counts as its own run.
func (b *Buffer) SelectWordAt(off int) {
	off = b.snap(clampInt(off, 0, b.Len()))
	line, _ := b.LineAt(off)
	lr, _ := b.LineRange(line)

	if off >= lr.End {
		// On the newline (or document end): select it alone.
		end := clampInt(off+1, 0, b.Len())
		b.Select(off, end)
		return
	}

	text, _ := b.LineText(line)
	rel := off - lr.Start

	type span struct {
		start, end int
		cluster    string
	}
	var hit span
	grapheme.ForEach(text, func(o int, cluster string) bool {
		if o <= rel {
			hit = span{start: o, end: o + len(cluster), cluster: cluster}
			return true
		}
		return false
	})

	class := func(cluster string) int {
		switch {
		case grapheme.IsWord(cluster):
			return 0
		case grapheme.IsSpace(cluster):
			return 1
		default:
			return 2
		}
	}
	c := class(hit.cluster)

	start, end := hit.start, hit.end
	if c != 2 {
		start, end = expandRun(text, hit.start, hit.end, func(cluster string) bool {
			return class(cluster) == c
		})
	}

	b.Select(lr.Start+start, lr.Start+end)
}

// expandRun widens [start, end) over neighboring clusters that satisfy
// match, staying within text.
func expandRun(text string, start, end int, match func(string) bool) (int, int) {
	type cl struct {
		start, end int
		s          string
	}
	var clusters []cl
	grapheme.ForEach(text, func(o int, cluster string) bool {
		clusters = append(clusters, cl{start: o, end: o + len(cluster), s: cluster})
		return true
	})

	i := 0
	for ; i < len(clusters); i++ {
		if clusters[i].start == start {
			break
		}
	}
	lo, hi := i, i
	for lo > 0 && match(clusters[lo-1].s) {
		lo--
	}
	for hi+1 < len(clusters) && match(clusters[hi+1].s) {
		hi++
	}
	return clusters[lo].start, clusters[hi].end
}

// SelectLineAt selects the whole line containing off, including its
// trailing newline when one exists.
func (b *Buffer) SelectLineAt(off int) {
	off = clampInt(off, 0, b.Len())
	line, _ := b.LineAt(off)
	start, _ := b.LineToOffset(line)
	end := b.Len()
	if line+1 < b.LineCount() {
		end, _ = b.LineToOffset(line + 1)
	}
	b.Select(start, end)
}

// SelectAll selects the entire document.
func (b *Buffer) SelectAll() {
	b.Select(0, b.Len())
}
