package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/doeshing/jarvis-go/internal/app"
	"github.com/doeshing/jarvis-go/internal/domain"
	configinfra "github.com/doeshing/jarvis-go/internal/infrastructure/config"
	"github.com/doeshing/jarvis-go/internal/infrastructure/history"
)

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%s %v error = %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func newHistoryContainer(t *testing.T) (*app.Container, *history.FileStore) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), 10)
	ctx := context.Background()
	for _, e := range []struct {
		cmd    string
		intent domain.Intent
		ok     bool
	}{
		{"help", domain.IntentHelp, true},
		{"open vscode", domain.IntentSystemControl, false},
		{"Help", domain.IntentHelp, true},
	} {
		result := domain.Failed("x")
		if e.ok {
			result = domain.Succeeded("x")
		}
		if err := store.Record(ctx, domain.NewHistoryEntry(e.cmd, e.intent, "", result)); err != nil {
			t.Fatalf("Record error = %v", err)
		}
	}
	return &app.Container{HistoryStore: store}, store
}

func TestHistoryListNewestFirst(t *testing.T) {
	container, _ := newHistoryContainer(t)
	out := run(t, NewHistoryCommand(container), "", "list", "--limit", "2")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[0], "| Help") || !strings.Contains(lines[1], "fail") {
		t.Fatalf("unexpected order: %q", lines)
	}
}

func TestHistoryStats(t *testing.T) {
	container, _ := newHistoryContainer(t)
	out := run(t, NewHistoryCommand(container), "", "stats")

	for _, want := range []string{"Entries analyzed: 3", "Success rate: 66.7%", "help: 2", "help (2)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryClearAsksFirst(t *testing.T) {
	container, store := newHistoryContainer(t)

	out := run(t, NewHistoryCommand(container), "n\n", "clear")
	if !strings.Contains(out, MsgClearCancelled) {
		t.Fatalf("expected cancellation, got %q", out)
	}
	run(t, NewHistoryCommand(container), "", "clear", "--yes")
	entries, err := store.Load(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("Load() = %v, %v", entries, err)
	}
}

func TestConfigGetAndPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := configinfra.NewFileLoader(path)
	container := &app.Container{ConfigProvider: loader, ConfigLoader: loader}

	if out := run(t, NewConfigCommand(container), "", "path"); strings.TrimSpace(out) != path {
		t.Fatalf("path = %q", out)
	}
	if out := run(t, NewConfigCommand(container), "", "get", "--key", "server.addr"); strings.TrimSpace(out) != domain.DefaultServerAddr {
		t.Fatalf("server.addr = %q", out)
	}
	if out := run(t, NewConfigCommand(container), "", "diff"); !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Fatalf("diff = %q", out)
	}
	if out := run(t, NewConfigCommand(container), "", "validate"); !strings.Contains(out, MsgConfigurationValid) {
		t.Fatalf("validate = %q", out)
	}
}

func TestVersionShowsRuntimeSetup(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	container := &app.Container{
		Config: domain.Config{
			Workspace: domain.WorkspaceSettings{Dir: "/home/tony/JARVIS_Workspace"},
			History:   domain.HistorySettings{File: "/home/tony/JARVIS_Workspace/.jarvis_history.json"},
		},
		ConfigLoader: configinfra.NewFileLoader(cfgPath),
		Backends:     []string{"gpt-4o-mini"},
	}
	out := run(t, NewVersionCommand(container), "")

	for _, want := range []string{
		"JARVIS version",
		"Classifier chain: gpt-4o-mini -> rules",
		"Workspace: /home/tony/JARVIS_Workspace",
		"History: /home/tony/JARVIS_Workspace/.jarvis_history.json (json, last 100)",
		"Config: " + cfgPath,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}

	bare := run(t, NewVersionCommand(&app.Container{}), "")
	if strings.Contains(bare, "Workspace:") {
		t.Errorf("unbuilt container should only print the build:\n%s", bare)
	}
}
