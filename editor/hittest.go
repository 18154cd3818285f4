package editor

// OffsetAt maps viewport-local cell coordinates to the nearest byte
// offset. (0,0) is the top-left of the visible content region; gutter
// clicks land on the line start, positions inside a wide cluster resolve
// to its nearer edge, and coordinates outside the document clamp to its
// edges.
func (m Model) OffsetAt(x, y int) int {
	line := m.viewport.YOffset + y
	if line < 0 {
		line = 0
	}
	if lc := m.ed.buf.LineCount(); line >= lc {
		line = lc - 1
	}

	gw := m.gutterWidth()
	vcol := 0
	if x >= gw {
		vcol = x - gw + m.xOffset
	}
	off, err := m.ed.buf.OffsetAtVisualCol(line, vcol, m.cfg.TabWidth)
	if err != nil {
		return 0
	}
	return off
}
