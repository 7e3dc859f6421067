// Package system adapts desktop integrations: launching applications,
// opening URLs and files, and the clipboard.
package system

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// startFunc starts a process without waiting for it.
type startFunc func(name string, args ...string) error

// Launcher starts desktop applications with the platform's launcher.
type Launcher struct {
	goos     string
	start    startFunc
	lookPath func(string) (string, error)
}

// NewLauncher builds a launcher for the running OS.
func NewLauncher() *Launcher {
	return &Launcher{goos: runtime.GOOS, start: startDetached, lookPath: exec.LookPath}
}

// Launch implements ports.Launcher.
func (l *Launcher) Launch(ctx context.Context, app string) error {
	app = strings.TrimSpace(app)
	if app == "" {
		return fmt.Errorf("%w: no application given", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name, args, err := l.command(app)
	if err != nil {
		return err
	}
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("launch %s: %w", app, err)
	}
	return nil
}

// unsafeAppChars are shell, cmd and path characters that never appear in an
// application name.
const unsafeAppChars = "&|<>^%;$`\"\\/'\n\r"

// command maps an application name to the process to start. User text is
// never passed as arguments to the resolved program.
func (l *Launcher) command(app string) (string, []string, error) {
	if strings.ContainsAny(app, unsafeAppChars) || strings.HasPrefix(app, "-") {
		return "", nil, fmt.Errorf("%w: %q is not an application name", domain.ErrInvalidInput, app)
	}
	switch l.goos {
	case "darwin":
		return "open", []string{"-a", app}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", app}, nil
	default:
		fields := strings.Fields(app)
		joined := strings.Join(fields, "-")
		candidates := []string{joined, strings.ToLower(joined)}
		for _, candidate := range candidates {
			if path, err := l.lookPath(candidate); err == nil {
				return path, nil, nil
			}
		}
		return "", nil, fmt.Errorf("application %q not found in PATH", app)
	}
}

// startDetached starts the process and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

var _ ports.Launcher = (*Launcher)(nil)
