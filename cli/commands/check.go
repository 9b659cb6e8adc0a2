package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-go-fts/cli/internal/ui"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext/condition"
)

var checkCmd = &cobra.Command{
	Use:   "check <condition>",
	Short: "Check a CONTAINS search condition",
	Long: `Parse a CONTAINS search condition, print its normalized form and the
terms it searches for.

Example:
  prisma-fts check 'sweetest &! meat'`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cond, err := condition.Parse(args[0])
	if err != nil {
		return err
	}

	ui.PrintSuccess("Condition is valid")
	ui.PrintSQL(cond.String())

	if terms := cond.Terms(); len(terms) > 0 {
		ui.PrintSection("Terms")
		ui.PrintList(terms)
	}
	return nil
}
