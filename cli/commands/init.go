package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-go-fts/cli/internal/config"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a user config file",
	Long: `Write ~/.config/prisma-fts/.prisma-fts.yaml with the current settings.
database_url is never written; keep it in the environment or a .env file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initDefaultTable string

func init() {
	initCmd.Flags().StringVar(&initDefaultTable, "default-table", "", "Table used when a request names none")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := *cfg
	if cmd.Flags().Changed("default-table") {
		out.DefaultTable = initDefaultTable
	}

	path, err := config.SaveConfig(&out)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Wrote %s", path)
	return nil
}
