package editor

import "github.com/iw2rmb/filigree/buffer"

// Config configures the editor widget.
type Config struct {
	// Language selects the grammar and editing metadata by registry ID
	// ("go", "rust", ...). New fails with syntax.ErrUnsupportedLanguage
	// when no grammar is registered for it.
	Language string

	// Text is the initial document content.
	Text string

	// DocID identifies the document in change events. Defaults to a
	// fresh UUID.
	DocID string

	// Rendering options.
	ShowLineNums bool
	Style        Style

	// TabWidth is the visual width of a tab stop. Defaults to 4.
	TabWidth int

	// ReadOnly drops every mutating key before it reaches the buffer.
	ReadOnly bool

	// Clipboard backs copy, cut and paste. Nil disables all three.
	Clipboard Clipboard

	// KeyMap overrides the default bindings when any of them is set.
	KeyMap KeyMap

	// ScrollPolicy controls manual viewport scrolling.
	ScrollPolicy ScrollPolicy

	// HistoryLimit caps undo depth. Zero means the buffer default.
	HistoryLimit int

	// CacheCapacity caps the highlight cache. Zero means the default.
	CacheCapacity int

	// OnChange, when set, observes every document change synchronously.
	OnChange func(ChangeEvent)
}

func (c Config) bufferOptions() buffer.Options {
	return buffer.Options{HistoryLimit: c.HistoryLimit}
}
