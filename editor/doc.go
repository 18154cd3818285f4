// Package editor binds a document buffer to its language: it keeps an
// incremental parse tree and a highlight cache in sync with every edit
// and answers viewport highlight queries against them.
//
// Editor is the host-facing session: edits, undo/redo, selection, line
// operations, and QueryHighlights. Model wraps a session as a Bubble Tea
// component with key and mouse handling, line numbers, grapheme-aware
// rendering, and change events.
package editor
