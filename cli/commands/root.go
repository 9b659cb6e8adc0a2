// Package commands implements the prisma-fts command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-go-fts/cli/internal/config"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/ui"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/version"
	"github.com/satishbabariya/prisma-go-fts/internal/debug"
)

var (
	configFile string
	debugFlag  bool

	// cfg is loaded before any subcommand runs.
	cfg = &config.Config{CacheSize: 256, ValidateConditions: true}
)

var rootCmd = &cobra.Command{
	Use:   "prisma-fts",
	Short: "Compile SQL Server full-text search queries",
	Long: `prisma-fts renders FREETEXT, CONTAINS, FREETEXTTABLE and CONTAINSTABLE
calls from structured requests, checks CONTAINS search conditions and runs
ranked searches against SQL Server.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			loaded.Debug = debugFlag
		}
		cfg = loaded
		debug.Init(cfg.Debug)
		debug.Debug("configuration loaded", "cache_size", cfg.CacheSize, "validate_conditions", cfg.ValidateConditions)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .prisma-fts.yaml in ., $HOME or $HOME/.config/prisma-fts)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to stderr")
}

// Execute is the main entry point for the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
