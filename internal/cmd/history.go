package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/doccomp/internal/history"
	"github.com/harrison/doccomp/internal/report"
)

// NewHistoryCommand creates the 'doccomp history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Comparison history commands",
		Long: `Commands for viewing and managing recorded comparisons.

Every comparison run with history enabled is stored in a SQLite database
so it can be listed, re-rendered, and re-exported later.`,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .doccomp/config.yaml)")
	cmd.PersistentFlags().String("db", "", "Path to history database (overrides config)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded comparisons",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded comparison",
		Long: `Display the full diff and similarity summary for a recorded comparison.

The id may be abbreviated to any unambiguous prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistoryShow,
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded comparisons",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	}
}

// openHistoryStore resolves the database path from flags and config.
func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		cfg, err := loadConfigForCommand(cmd)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.History.DBPath
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list comparisons: %w", err)
	}

	output := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(output, "No comparisons recorded.")
		return nil
	}

	fmt.Fprintf(output, "%-8s  %-19s  %-20s  %-20s  %s\n", "ID", "CREATED", "LEFT", "RIGHT", "VERDICT")
	for _, e := range entries {
		fmt.Fprintf(output, "%-8s  %-19s  %-20s  %-20s  %s\n",
			shortID(e.ID),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			truncate(e.LeftName, 20),
			truncate(e.RightName, 20),
			e.Verdict)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	fmt.Fprintf(output, "Comparison %s\n", entry.ID)
	fmt.Fprintf(output, "Created: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(output, "Left:    %s (%s)\n", entry.LeftName, entry.LeftFormat)
	fmt.Fprintf(output, "Right:   %s (%s)\n\n", entry.RightName, entry.RightFormat)

	useColor := isTerminalWriter(output)
	report.WriteTerminal(output, entry.Result, useColor)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d comparison(s)\n", deleted)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// isTerminalWriter reports whether w is the process stdout attached to a
// terminal. Buffers used in tests never get colors.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && isatty.IsTerminal(f.Fd())
}
