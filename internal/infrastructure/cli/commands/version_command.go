package commands

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/jarvis-go/internal/app"
	"github.com/doeshing/jarvis-go/internal/version"
)

// NewVersionCommand reports the build and the assistant setup it will run with.
func NewVersionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show JARVIS version and runtime setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayVersionInformation(cmd.OutOrStdout(), container)
		},
	}
}

func displayVersionInformation(out io.Writer, container *app.Container) error {
	fmt.Fprintf(out, "JARVIS version %s (%s, %s/%s)\n", version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}
	if container == nil || container.ConfigLoader == nil {
		return nil
	}

	cfg := container.Config
	chain := append(append([]string(nil), container.Backends...), "rules")
	fmt.Fprintf(out, "Assistant: %s\n", cfg.GetAssistantName())
	fmt.Fprintf(out, "Classifier chain: %s\n", strings.Join(chain, " -> "))
	fmt.Fprintf(out, "Workspace: %s\n", cfg.Workspace.Dir)
	fmt.Fprintf(out, "History: %s (%s, last %d)\n", cfg.History.File, cfg.GetHistoryBackend(), cfg.GetHistoryMaxEntries())
	fmt.Fprintf(out, "Config: %s\n", container.ConfigLoader.Path())
	return nil
}
