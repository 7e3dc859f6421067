package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Opener hands URLs and files to the desktop's default handler.
type Opener struct {
	goos  string
	start startFunc
}

// NewOpener builds an opener for the running OS.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: startDetached}
}

// Open implements ports.Opener.
func (o *Opener) Open(ctx context.Context, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("%w: nothing to open", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch o.goos {
	case "darwin":
		err = o.start("open", target)
	case "windows":
		err = o.start("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		err = o.start("xdg-open", target)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

var _ ports.Opener = (*Opener)(nil)
