package system

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/doeshing/jarvis-go/internal/ports"
)

// Clipboard implements ports.Clipboard on top of the platform clipboard tools
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}

// Read returns the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	return clipboard.ReadAll()
}

var _ ports.Clipboard = (*Clipboard)(nil)
