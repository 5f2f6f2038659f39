package cli

import "github.com/atotto/clipboard"

// clipboardWriter receives the redacted text for pasting elsewhere.
type clipboardWriter interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// clip is replaced in tests.
var clip clipboardWriter = systemClipboard{}
