package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/doccomp/internal/history"
	"github.com/harrison/doccomp/internal/report"
)

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left-file> <right-file>",
		Short: "Compare two documents",
		Long: `Compare two text documents and print the diff and similarity summary.

Word and PDF sources must be converted to plain text before comparison;
doccomp reads the extracted text and tags the report with the original
format based on the file extension.

Examples:
  doccomp compare old.txt new.txt
  doccomp compare --mode context --context 5 old.txt new.txt
  doccomp compare --scorers levenshtein,token_overlap old.txt new.txt
  doccomp compare --ignore-case --threshold 0.7 old.txt new.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	addCompareFlags(cmd)
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("no-save", false, "Do not record this comparison in history")

	return cmd
}

// runCompare implements the compare command logic
func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return err
	}

	res, meta, err := runComparison(cmd.Context(), cmd, cfg, args[0], args[1])
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	useColor := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	report.WriteTerminal(cmd.OutOrStdout(), res, useColor)

	noSave, _ := cmd.Flags().GetBool("no-save")
	if cfg.History.Enabled && !noSave {
		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()

		id, err := store.Save(cmd.Context(), meta.LeftName, meta.RightName, meta.LeftFormat, meta.RightFormat, res)
		if err != nil {
			return fmt.Errorf("save comparison: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved comparison %s\n", shortID(id))
	}

	return nil
}

// shortID abbreviates a comparison id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
