package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a Bubble Tea code-editing component: a language-bound Editor
// behind a viewport, with key and mouse handling, line numbers, and
// syntax highlighting.
type Model struct {
	cfg Config
	ed  *Editor
	km  KeyMap

	focused bool

	viewport viewport.Model
	xOffset  int

	clicks        ClickTracker
	mouseAnchor   int
	mouseDragging bool

	lastVersion uint64
	lastCursor  int
}

// New builds the widget. It fails when cfg.Language has no registered
// grammar.
func New(cfg Config) (Model, error) {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	ed, err := OpenWith(cfg.Language, cfg.Text, Options{
		DocID:         cfg.DocID,
		CacheCapacity: cfg.CacheCapacity,
		Buffer:        cfg.bufferOptions(),
	})
	if err != nil {
		return Model{}, err
	}

	km := cfg.KeyMap
	if !km.Left.Enabled() {
		km = DefaultKeyMap()
	}

	m := Model{
		cfg:      cfg,
		ed:       ed,
		km:       km,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastVersion = ed.buf.Version()
	m.lastCursor = ed.buf.Cursor()
	m.rebuildContent()
	return m, nil
}

// Editor exposes the underlying session. Mutations made through it are
// picked up on the next Update or View.
func (m Model) Editor() *Editor { return m.ed }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

// SetStyle replaces the theme and repaints.
func (m Model) SetStyle(st Style) Model {
	m.cfg.Style = st
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) View() string { return m.viewport.View() }

// Close releases the session's parse tree. The model must not be used
// afterwards.
func (m Model) Close() { m.ed.Close() }

// syncFromEditor refreshes rendered content after the session changed,
// whether through Update or directly through Editor(). It reports
// whether the cursor moved.
func (m *Model) syncFromEditor() (cursorChanged bool) {
	ver := m.ed.buf.Version()
	cur := m.ed.buf.Cursor()
	if ver == m.lastVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls vertically and horizontally so the cursor stays
// in view.
func (m *Model) followCursor() {
	cur := m.ed.buf.Cursor()
	row, _ := m.ed.buf.LineAt(cur)

	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h > 0 {
		y := m.viewport.YOffset
		if row < y {
			m.viewport.SetYOffset(row)
		} else if row >= y+h {
			m.viewport.SetYOffset(row - h + 1)
		}
	}

	w := m.contentWidth()
	if w > 0 {
		vcol, err := m.ed.buf.VisualCol(cur, m.cfg.TabWidth)
		if err != nil {
			return
		}
		prev := m.xOffset
		if vcol < m.xOffset {
			m.xOffset = vcol
		} else if vcol >= m.xOffset+w {
			m.xOffset = vcol - w + 1
		}
		if m.xOffset != prev {
			m.rebuildContent()
		}
	}
}

// contentWidth is the viewport width left for text after the gutter.
func (m Model) contentWidth() int {
	return m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth()
}
