// Package grapheme wraps uniseg segmentation and cell-width measurement for
// the byte-offset document model.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// ForEach calls fn for every cluster with its starting byte offset within
// text. Iteration stops when fn returns false.
func ForEach(text string, fn func(off int, cluster string) bool) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		if !fn(from, g.Str()) {
			return
		}
	}
}

// Width returns the terminal cell width of one cluster: 0 for a cluster of
// combining marks, 2 for wide CJK-class glyphs and emoji (including ZWJ
// sequences), 1 otherwise. Tabs are not handled here; their width depends
// on the column they start at.
func Width(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	return w
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsWord reports whether cluster belongs to a word run: letters, digits,
// marks, or underscore.
func IsWord(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return true
}
