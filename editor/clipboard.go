package editor

// Clipboard backs the copy, cut, and paste bindings. Implementations
// must not block for long; errors are swallowed so a broken system
// clipboard never crashes the UI.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
