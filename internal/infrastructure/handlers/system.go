package handlers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// SystemHandler serves system_control.
type SystemHandler struct {
	Config    domain.Config
	Launcher  ports.Launcher
	Clipboard ports.Clipboard
	// Backends names the classifier backends that were built, for status output.
	Backends []string
	// LookPath finds developer tools for status output. Nil uses exec.LookPath.
	LookPath func(string) (string, error)
	Logger   ports.Logger
}

var statusTools = []string{"git", "python3", "python", "go", "node", "docker", "code"}

// Handle implements ports.Handler.
func (h *SystemHandler) Handle(ctx context.Context, rec domain.IntentRecord) (ports.HandlerResult, error) {
	var (
		result domain.ExecutionResult
		err    error
	)
	switch rec.Action() {
	case domain.ActionOpenApp:
		result, err = h.open(ctx, rec.String(domain.ParamApplication))
	case domain.ActionCopyClipboard:
		result, err = h.copy(rec.String(domain.ParamText))
	case domain.ActionReadClipboard:
		result, err = h.paste()
	case domain.ActionSystemStatus:
		result = h.status()
	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownAction, rec.Action())
	}
	return ports.HandlerResult{Result: result}, err
}

func (h *SystemHandler) open(ctx context.Context, app string) (domain.ExecutionResult, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return domain.ExecutionResult{}, fmt.Errorf("%w: which application should I open?", domain.ErrInvalidInput)
	}
	target := h.Config.ResolveAppAlias(app)
	if err := h.Launcher.Launch(ctx, target); err != nil {
		return domain.ExecutionResult{}, err
	}
	h.Logger.Info("application launched", map[string]interface{}{"app": app, "target": target})
	return domain.Succeeded("🚀 Opening "+app, domain.SideEffect{Kind: domain.EffectAppLaunched, Target: target}), nil
}

func (h *SystemHandler) copy(text string) (domain.ExecutionResult, error) {
	if text == "" {
		return domain.ExecutionResult{}, fmt.Errorf("%w: nothing to copy", domain.ErrInvalidInput)
	}
	if h.Clipboard == nil || !h.Clipboard.Enabled() {
		return domain.Failed("Clipboard is not available on this system."), nil
	}
	if err := h.Clipboard.Copy(text); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("copy to clipboard: %w", err)
	}
	return domain.Succeeded("📋 Copied to clipboard.", domain.SideEffect{Kind: domain.EffectClipboardSet, Target: domain.Excerpt(text, 40)}), nil
}

func (h *SystemHandler) paste() (domain.ExecutionResult, error) {
	if h.Clipboard == nil || !h.Clipboard.Enabled() {
		return domain.Failed("Clipboard is not available on this system."), nil
	}
	text, err := h.Clipboard.Read()
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Succeeded("Your clipboard is empty."), nil
	}
	return domain.Succeeded("📋 Clipboard contains:\n" + text), nil
}

func (h *SystemHandler) status() domain.ExecutionResult {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	files, size := workspaceUsage(h.Config.Workspace.Dir)

	backends := "rules only"
	if len(h.Backends) > 0 {
		backends = strings.Join(h.Backends, ", ") + ", rules"
	}

	lines := []string{
		"🖥️ System status",
		fmt.Sprintf("- OS: %s/%s", runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("- Host: %s", host),
		fmt.Sprintf("- CPUs: %d", runtime.NumCPU()),
		fmt.Sprintf("- Workspace: %s (%d files, %s)", h.Config.Workspace.Dir, files, humanize.Bytes(size)),
		fmt.Sprintf("- Classifier: %s", backends),
	}
	if tools := h.detectTools(); len(tools) > 0 {
		lines = append(lines, "- Tools: "+strings.Join(tools, ", "))
	}
	return domain.Succeeded(strings.Join(lines, "\n"))
}

func (h *SystemHandler) detectTools() []string {
	lookPath := h.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var found []string
	for _, tool := range statusTools {
		if _, err := lookPath(tool); err == nil {
			found = append(found, tool)
		}
	}
	return found
}

func workspaceUsage(dir string) (int, uint64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	var count int
	var total uint64
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if info, err := e.Info(); err == nil {
			count++
			total += uint64(info.Size())
		}
	}
	return count, total
}

var _ ports.Handler = (*SystemHandler)(nil)
