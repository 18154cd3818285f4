package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/filigree/buffer"
	"github.com/iw2rmb/filigree/internal/grapheme"
	"github.com/iw2rmb/filigree/syntax"
)

// Style classes drive run batching: adjacent clusters in the same class
// render through one Style.Render call, so an unstyled document comes out
// as its plain text.
const (
	classText = iota
	classCursor
	classSelection
	classSpan // + category
)

// renderContent renders the whole document into viewport content. Syntax
// highlighting is computed only for rows the viewport can show; rows
// outside it render unstyled until scrolled into view.
func (m *Model) renderContent() string {
	lineCount := m.ed.buf.LineCount()
	cursor := m.ed.buf.Cursor()
	cursorLine, _ := m.ed.buf.LineAt(cursor)
	sel, selOK := m.ed.buf.Selection()

	digitCount := gutterDigits(lineCount)

	var spans []syntax.Span
	top, bottom := 0, 0
	if h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize(); h > 0 {
		top = clampInt(m.viewport.YOffset, 0, lineCount)
		bottom = clampInt(top+h, 0, lineCount)
		spans, _ = m.ed.QueryHighlights(top, bottom)
	}

	out := make([]string, 0, lineCount)
	si := 0
	for row := 0; row < lineCount; row++ {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursorLine {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		lr, _ := m.ed.buf.LineRange(row)

		var rowSpans []syntax.Span
		if row >= top && row < bottom {
			for si < len(spans) && spans[si].End <= lr.Start {
				si++
			}
			j := si
			for j < len(spans) && spans[j].Start < lr.End {
				j++
			}
			rowSpans = spans[si:j]
		}

		sb.WriteString(m.renderLine(row, lr, rowSpans, cursor, cursorLine, sel, selOK))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine renders one document line clipped to the horizontal window
// [xOffset, xOffset+contentWidth). Style priority per cluster is cursor,
// then selection, then highlight span, then plain text.
func (m *Model) renderLine(row int, lr buffer.Range, spans []syntax.Span, cursor, cursorLine int, sel buffer.Range, selOK bool) string {
	text, _ := m.ed.buf.LineText(row)
	st := m.cfg.Style

	left := maxInt(m.xOffset, 0)
	right := int(^uint(0) >> 1)
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	var sb strings.Builder
	var run strings.Builder
	runClass := -1
	var runStyle lipgloss.Style

	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(runStyle.Render(run.String()))
		run.Reset()
	}
	emit := func(s string, class int, style lipgloss.Style) {
		if class != runClass {
			flush()
			runClass = class
			runStyle = style
		}
		run.WriteString(s)
	}

	hasCursor := m.focused && cursorLine == row
	col := 0
	k := 0
	grapheme.ForEach(text, func(o int, cluster string) bool {
		off := lr.Start + o
		w := buffer.VisualWidth(cluster, col, m.cfg.TabWidth)
		segL, segR := col, col+w
		col = segR

		if segL >= right {
			return false
		}
		if segR <= left {
			return true
		}

		for k < len(spans) && spans[k].End <= off {
			k++
		}

		class, style := classText, st.Text
		switch {
		case hasCursor && off == cursor:
			class, style = classCursor, st.Cursor
		case selOK && off >= sel.Start && off < sel.End:
			class, style = classSelection, st.Selection
		case k < len(spans) && spans[k].Start <= off:
			cat := spans[k].Category
			class, style = classSpan+int(cat), st.spanStyle(cat)
		}

		rendered := cluster
		if cluster == "\t" {
			rendered = strings.Repeat(" ", w)
		}

		if segL >= left && segR <= right {
			emit(rendered, class, style)
			return true
		}

		// Cluster straddles a window edge: keep alignment with blanks.
		visible := minInt(segR, right) - maxInt(segL, left)
		if cluster == "\t" {
			emit(strings.Repeat(" ", visible), class, style)
		} else {
			emit(strings.Repeat(" ", visible), classText, st.Text)
		}
		return true
	})

	// One trailing cell represents the line break: the cursor parked at
	// end of line, or the selected newline of a multi-line selection.
	eolCell := col
	if eolCell >= left && eolCell < right {
		switch {
		case hasCursor && cursor == lr.End:
			emit(" ", classCursor, st.Cursor)
		case selOK && sel.Start <= lr.End && lr.End < sel.End:
			emit(" ", classSelection, st.Selection)
		}
	}

	flush()
	return sb.String()
}

func gutterDigits(lineCount int) int {
	return len(fmt.Sprintf("%d", lineCount))
}

// gutterWidth is the number of cells the gutter occupies: the line-number
// digits plus one space.
func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.ed.buf.LineCount()) + 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
