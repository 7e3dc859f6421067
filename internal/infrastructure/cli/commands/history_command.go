package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/jarvis-go/internal/app"
	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the command history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryPathCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container.HistoryStore, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search commands and results for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container.HistoryStore, args[0], searchLimit)
		},
	}

	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the history file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			if store == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if !yes && !helpers.PromptForConfirmation(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), "Delete all history in "+store.Path()+"?") {
				fmt.Fprintln(cmd.OutOrStdout(), MsgClearCancelled)
				return nil
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryPathCommand creates the 'history path' subcommand
func newHistoryPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.HistoryStore.Path())
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate, intents and top commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container.HistoryStore)
		},
	}
}

// listHistoryEntries prints the newest entries first
func listHistoryEntries(ctx context.Context, out io.Writer, store ports.HistoryRepository, limit int) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve history entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(entries)-i > limit {
			break
		}
		printEntry(out, entries[i])
	}
	return nil
}

// searchHistoryEntries prints entries whose command or result contains term
func searchHistoryEntries(ctx context.Context, out io.Writer, store ports.HistoryRepository, term string, limit int) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Search(ctx, term, limit)
	if err != nil {
		return fmt.Errorf("failed to search history: %w", err)
	}
	for _, entry := range entries {
		printEntry(out, entry)
	}
	return nil
}

func printEntry(out io.Writer, entry domain.HistoryEntry) {
	status := "ok"
	if !entry.Success {
		status = "fail"
	}
	fmt.Fprintf(out, "%s | %-4s | %-15s | %s\n",
		entry.Timestamp.Local().Format(domain.TimestampFormat),
		status,
		entry.Intent,
		entry.Command)
}

// showHistoryStats displays success rate, intent distribution and top commands
func showHistoryStats(ctx context.Context, out io.Writer, store ports.HistoryRepository) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.AnalyzeHistory(entries)
	fmt.Fprintf(out, "Entries analyzed: %d (since %s)\nSuccess rate: %.1f%%\n",
		len(entries),
		humanize.Time(entries[0].Timestamp),
		helpers.CalculateSuccessRate(stats.Successful, len(entries)))

	fmt.Fprintln(out, "Intents:")
	for _, stat := range helpers.CalculateTopCommands(stats.IntentFreq, 0) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Command, stat.Count)
	}

	fmt.Fprintln(out, "Top commands:")
	for _, stat := range helpers.CalculateTopCommands(stats.CommandFreq, TopCommandsShown) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
	}
	return nil
}
