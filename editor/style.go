package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/filigree/syntax"
)

// Style controls the editor's rendering. The zero value renders plain
// text with no styling at all, which keeps output byte-comparable in
// tests.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Syntax maps highlight categories to styles. Categories without an
	// entry fall back to Text.
	Syntax map[syntax.Category]lipgloss.Style
}

// spanStyle resolves the style for a highlight category.
func (s Style) spanStyle(cat syntax.Category) lipgloss.Style {
	if st, ok := s.Syntax[cat]; ok {
		return st
	}
	return s.Text
}

// DefaultStyle is a dark theme with a muted gutter and a warm accent
// palette for syntax.
func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#f6c99f"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Syntax: map[syntax.Category]lipgloss.Style{
			syntax.CategoryKeyword:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0")),
			syntax.CategoryString:   lipgloss.NewStyle().Foreground(lipgloss.Color("#b1fce5")),
			syntax.CategoryComment:  lipgloss.NewStyle().Foreground(lipgloss.Color("#585858")),
			syntax.CategoryNumber:   accent,
			syntax.CategoryConstant: accent,
			syntax.CategoryFunction: accent,
			syntax.CategoryMacro:    accent,
			syntax.CategoryType:     accent,
			syntax.CategoryVariable: lipgloss.NewStyle().Foreground(lipgloss.Color("#a5fcb6")),
			syntax.CategoryProperty: lipgloss.NewStyle().Foreground(lipgloss.Color("#a5fcb6")),
			syntax.CategoryTag:      lipgloss.NewStyle().Foreground(lipgloss.Color("#c6a5fc")),
		},
	}
}
