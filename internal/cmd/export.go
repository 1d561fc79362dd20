package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/config"
	"github.com/harrison/doccomp/internal/history"
	"github.com/harrison/doccomp/internal/report"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [<left-file> <right-file>]",
		Short: "Export a comparison report",
		Long: `Export a comparison as JSON, Markdown, HTML, or plain text.

With two file arguments a fresh comparison is run. With --id the report is
re-rendered from a comparison recorded in history, without recomputation.

Examples:
  doccomp export -f markdown -o report.md old.txt new.txt
  doccomp export -f html -o report.html old.txt new.txt
  doccomp export -f json --id 3fa85f64 -o result.json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runExport,
	}

	addCompareFlags(cmd)
	cmd.Flags().StringP("format", "f", string(report.FormatMarkdown), "Export format: json, markdown, html, text")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("id", "", "Export a recorded comparison by id or id prefix")

	return cmd
}

// runExport implements the export command logic
func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetString("id")

	var res *reportResult
	switch {
	case id != "":
		if len(args) != 0 {
			return fmt.Errorf("--id and file arguments are mutually exclusive")
		}
		res, err = resultFromHistory(cmd, cfg, id)
	case len(args) == 2:
		res, err = resultFromFiles(cmd, cfg, args)
	default:
		return fmt.Errorf("expected two file arguments or --id")
	}
	if err != nil {
		return err
	}

	data, err := report.Export(format, res.result, res.meta)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, output)
	return nil
}

type reportResult struct {
	result *compare.Result
	meta   report.Metadata
}

func resultFromFiles(cmd *cobra.Command, cfg *config.Config, args []string) (*reportResult, error) {
	res, meta, err := runComparison(cmd.Context(), cmd, cfg, args[0], args[1])
	if err != nil {
		return nil, err
	}
	return &reportResult{result: res, meta: meta}, nil
}

func resultFromHistory(cmd *cobra.Command, cfg *config.Config, id string) (*reportResult, error) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	meta := report.Metadata{
		LeftName:    entry.LeftName,
		RightName:   entry.RightName,
		LeftFormat:  entry.LeftFormat,
		RightFormat: entry.RightFormat,
		GeneratedAt: time.Now(),
	}
	return &reportResult{result: entry.Result, meta: meta}, nil
}
