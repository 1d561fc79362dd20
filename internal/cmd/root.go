package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for doccomp
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doccomp",
		Short: "Document comparison engine",
		Long: `Doccomp compares two text documents and reports their differences
and similarity.

It computes a line-level diff with word- and character-level detail inside
changed lines, scores the documents with several similarity algorithms
(Levenshtein, Jaro-Winkler, token overlap), and renders the outcome as a
terminal diff or an exported report (JSON, Markdown, HTML, text).

Configuration is loaded from .doccomp/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewCompareCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewCacheCommand())

	return cmd
}
