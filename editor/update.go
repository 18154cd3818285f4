package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/filigree/buffer"
)

// Update handles Bubble Tea messages. When the document, cursor, or
// selection changed by the time the message is fully applied, the
// configured OnChange observer fires once, synchronously.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.ed.buf.Version()
	yBefore := m.viewport.YOffset

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}

	if m.syncFromEditor() {
		m.followCursor()
	}
	// Scrolling moves the highlighted window even when content did not
	// change.
	if m.viewport.YOffset != yBefore {
		m.rebuildContent()
	}
	if m.cfg.OnChange != nil && m.ed.buf.Version() != before {
		m.cfg.OnChange(buildChangeEvent(m.ed))
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Bracketed paste inserts literal text and never triggers shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.ed.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m
	}

	switch {
	case key.Matches(msg, m.km.Left):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, m.km.Right):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, m.km.Up):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirUp})
	case key.Matches(msg, m.km.Down):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirDown})

	case key.Matches(msg, m.km.ShiftLeft):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, m.km.ShiftRight):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, m.km.ShiftUp):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, m.km.ShiftDown):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, m.km.WordLeft):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, m.km.WordRight):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, m.km.Home):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, m.km.End):
		m.ed.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, m.km.SelectAll):
		m.ed.buf.SelectAll()

	case key.Matches(msg, m.km.Backspace):
		if !m.cfg.ReadOnly {
			m.ed.buf.DeleteBackward()
		}
	case key.Matches(msg, m.km.Delete):
		if !m.cfg.ReadOnly {
			m.ed.buf.DeleteForward()
		}
	case key.Matches(msg, m.km.Enter):
		if !m.cfg.ReadOnly {
			m.ed.buf.InsertNewlineIndented()
		}

	case key.Matches(msg, m.km.Indent):
		if !m.cfg.ReadOnly {
			if _, active := m.ed.buf.Selection(); active {
				m.ed.IndentSelection()
			} else {
				m.ed.buf.InsertText(m.ed.indentUnit())
			}
		}
	case key.Matches(msg, m.km.Unindent):
		if !m.cfg.ReadOnly {
			m.ed.UnindentSelection()
		}
	case key.Matches(msg, m.km.ToggleComment):
		if !m.cfg.ReadOnly {
			m.ed.ToggleComment()
		}
	case key.Matches(msg, m.km.DuplicateLine):
		if !m.cfg.ReadOnly {
			m.ed.DuplicateLine()
		}
	case key.Matches(msg, m.km.DeleteLine):
		if !m.cfg.ReadOnly {
			m.ed.DeleteLine()
		}

	case key.Matches(msg, m.km.Undo):
		if !m.cfg.ReadOnly {
			m.ed.Undo()
		}
	case key.Matches(msg, m.km.Redo):
		if !m.cfg.ReadOnly {
			m.ed.Redo()
		}

	case key.Matches(msg, m.km.Copy):
		m.copyToClipboard()
	case key.Matches(msg, m.km.Cut):
		if m.cfg.ReadOnly {
			m.copyToClipboard()
		} else {
			m.cutToClipboard()
		}
	case key.Matches(msg, m.km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteFromClipboard()
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if !m.cfg.ReadOnly {
				m.ed.buf.InsertText(string(msg.Runes))
			}
		}
	}

	return m
}

func (m Model) copyToClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	if s, ok := m.ed.Copy(); ok {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m Model) cutToClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	if s, ok := m.ed.Cut(); ok {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m Model) pasteFromClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.ed.Paste(s)
}
