package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/filigree/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.ScrollPolicy == ScrollAllowManual || !isManualScrollMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused {
		return m, cmd
	}

	// Only the left button moves the cursor or selection.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, cmd
		}
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}

		p := m.OffsetAt(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.ed.buf.Cursor()
			if raw, ok := m.ed.buf.SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.ed.buf.SetCursor(p)
			m.ed.buf.SetSelection(buffer.Range{Start: anchor, End: p})
			m.mouseDragging = true
			return m, cmd
		}

		switch m.clicks.Click(msg.X, msg.Y, time.Now()) {
		case 2:
			m.ed.buf.SelectWordAt(p)
		case 3:
			m.ed.buf.SelectLineAt(p)
		default:
			m.mouseAnchor = p
			m.ed.buf.SetCursor(p)
			m.ed.buf.ClearSelection()
			m.mouseDragging = true
		}

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}

		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.OffsetAt(x, y)
		m.ed.buf.SetCursor(p)
		m.ed.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		if x < 0 {
			x = 0
		}
		if x >= m.viewport.Width {
			x = m.viewport.Width - 1
		}
	}
	if m.viewport.Height > 0 {
		if y < 0 {
			y = 0
		}
		if y >= m.viewport.Height {
			y = m.viewport.Height - 1
		}
	}
	return x, y
}
