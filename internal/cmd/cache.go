package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/doccomp/internal/cache"
)

// NewCacheCommand creates the 'doccomp cache' parent command
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Result cache commands",
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .doccomp/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached comparison results",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})

	return cmd
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	removed, err := store.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d cached result(s)\n", removed)
	return nil
}
