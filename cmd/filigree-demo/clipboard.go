package main

import "github.com/atotto/clipboard"

// systemClipboard backs the editor's copy, cut and paste with the OS
// clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }
