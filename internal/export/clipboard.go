package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard receives the exported document.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unavailable on this system")
	}
	return clipboard.WriteAll(text)
}

// Copy builds the document and writes it to cb.
func (b *Builder) Copy(sel Selection, cb Clipboard) (Result, error) {
	res, err := b.Build(sel)
	if err != nil {
		return res, err
	}
	if err := cb.WriteAll(res.Document); err != nil {
		return res, fmt.Errorf("copy to clipboard: %w", err)
	}
	return res, nil
}
