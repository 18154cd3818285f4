// Package buffer implements the pure, byte-accurate document model for Filigree.
//
// Offsets are 0-based byte positions into the UTF-8 text and must land on
// rune boundaries. Ranges are half-open selections: [Start, End).
package buffer
