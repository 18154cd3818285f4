package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/iw2rmb/filigree/editor"
	"github.com/iw2rmb/filigree/syntax"
)

const statusHeight = 1

// The editor widget handles keys and mouse itself; the app model wraps
// it with file and config concerns.
type (
	fileChangedMsg   struct{}
	configChangedMsg struct{}
)

type appModel struct {
	path     string
	editor   editor.Model
	cfg      demoConfig
	readOnly bool

	watcher  *fileWatcher
	fileCh   <-chan struct{}
	configCh chan struct{}

	width    int
	savedGen uint64
	status   string

	statusStyle lipgloss.Style
}

func newApp(path, text, langID string, cfg demoConfig, readOnly bool) (appModel, error) {
	w, err := editor.New(editor.Config{
		Language:     langID,
		Text:         text,
		DocID:        path,
		ShowLineNums: cfg.LineNumbers,
		Style:        buildStyle(cfg),
		TabWidth:     cfg.TabWidth,
		ReadOnly:     readOnly,
		Clipboard:    systemClipboard{},
		ScrollPolicy: scrollPolicy(cfg),
	})
	if err != nil {
		return appModel{}, fmt.Errorf("opening %s: %w", path, err)
	}

	m := appModel{
		path:     path,
		editor:   w,
		cfg:      cfg,
		readOnly: readOnly,
		configCh: make(chan struct{}, 1),
		savedGen: w.Editor().Generation(),
		statusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")),
	}

	// Reload is best effort; the editor works fine without the watcher.
	if fw, err := newFileWatcher(path); err == nil {
		if ch, err := fw.Start(); err == nil {
			m.watcher, m.fileCh = fw, ch
		} else {
			_ = fw.Stop()
		}
	}

	configCh := m.configCh
	viper.OnConfigChange(func(fsnotify.Event) {
		select {
		case configCh <- struct{}{}:
		default:
		}
	})
	if viper.ConfigFileUsed() != "" {
		viper.WatchConfig()
	}

	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.listenFile(), m.listenConfig())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor = m.editor.SetSize(msg.Width, msg.Height-statusHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			return m.save(), nil
		}

	case fileChangedMsg:
		m = m.reloadFromDisk()
		// The widget picks up the new version on any Update call.
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, tea.Batch(cmd, m.listenFile())

	case configChangedMsg:
		m = m.reloadConfig()
		return m, m.listenConfig()
	}

	m.status = ""
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	return m.editor.View() + "\n" + m.statusLine()
}

func (m appModel) Close() {
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
	m.editor.Close()
}

// listenFile waits for the next debounced change to the opened file.
func (m appModel) listenFile() tea.Cmd {
	ch := m.fileCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m appModel) listenConfig() tea.Cmd {
	ch := m.configCh
	return func() tea.Msg {
		<-ch
		return configChangedMsg{}
	}
}

func (m appModel) save() appModel {
	if m.readOnly {
		return m
	}
	ed := m.editor.Editor()
	if err := os.WriteFile(m.path, []byte(ed.Text()), 0o644); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m
	}
	m.savedGen = ed.Generation()
	m.status = "saved"
	return m
}

// reloadFromDisk replaces the buffer with the file's current content.
// Unsaved edits always win over the disk copy.
func (m appModel) reloadFromDisk() appModel {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return m
	}
	ed := m.editor.Editor()
	text := string(data)
	if text == ed.Text() {
		// Our own save echoing back through the watcher.
		return m
	}
	if ed.Generation() != m.savedGen {
		m.status = "changed on disk; keeping unsaved edits"
		return m
	}
	if err := ed.SetText(text); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m
	}
	m.savedGen = ed.Generation()
	m.status = "reloaded from disk"
	return m
}

func (m appModel) reloadConfig() appModel {
	var next demoConfig
	if err := viper.Unmarshal(&next); err != nil {
		m.status = fmt.Sprintf("config reload failed: %v", err)
		return m
	}
	m.cfg = next
	m.editor = m.editor.SetStyle(buildStyle(next))
	m.status = "config reloaded"
	return m
}

func (m appModel) statusLine() string {
	ed := m.editor.Editor()
	buf := ed.Buffer()
	lc, _ := buf.OffsetToLineCol(buf.Cursor())

	name := filepath.Base(m.path)
	if ed.Generation() != m.savedGen {
		name += " *"
	}

	parts := []string{
		name,
		ed.Language().Name,
		fmt.Sprintf("%d:%d", lc.Line+1, lc.Col+1),
	}
	if m.readOnly {
		parts = append(parts, "read-only")
	}
	if ed.Degraded() {
		parts = append(parts, "parse degraded")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	line := " " + strings.Join(parts, "  •  ")
	if m.width > 0 {
		return m.statusStyle.Width(m.width).Render(line)
	}
	return m.statusStyle.Render(line)
}

// buildStyle layers the configured theme colors over the default style.
func buildStyle(cfg demoConfig) editor.Style {
	st := editor.DefaultStyle()
	if len(cfg.Theme) == 0 {
		return st
	}
	styles := make(map[syntax.Category]lipgloss.Style, len(st.Syntax))
	for cat, s := range st.Syntax {
		styles[cat] = s
	}
	for name, color := range cfg.Theme {
		cat, ok := categoryByName[strings.ToLower(name)]
		if !ok {
			continue
		}
		styles[cat] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	st.Syntax = styles
	return st
}

func scrollPolicy(cfg demoConfig) editor.ScrollPolicy {
	if cfg.FollowCursorOnly {
		return editor.ScrollFollowCursorOnly
	}
	return editor.ScrollAllowManual
}

var categoryByName = func() map[string]syntax.Category {
	m := make(map[string]syntax.Category)
	for c := syntax.CategoryKeyword; c <= syntax.CategoryTag; c++ {
		m[c.String()] = c
	}
	return m
}()
