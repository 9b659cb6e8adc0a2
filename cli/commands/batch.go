package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-go-fts/cli/internal/batch"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/config"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/ui"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/version"
	"github.com/satishbabariya/prisma-go-fts/cli/internal/watch"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Render every request of a YAML batch file",
	Long: `Render every request of a YAML batch file and print the results as a
table. Failed requests are reported and make the command fail.

With --watch the file is re-rendered whenever it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var batchWatch bool

func init() {
	batchCmd.Flags().BoolVarP(&batchWatch, "watch", "w", false, "Re-render when the file changes")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	compiler := newCompiler(cfg.ValidateConditions)

	if !batchWatch {
		return renderBatch(path, compiler)
	}

	w, err := watch.NewWatcher(path, func() error {
		ui.PrintSection(fmt.Sprintf("Rendering %s", path))
		if err := renderBatch(path, compiler); err != nil {
			ui.PrintError("%v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ui.PrintInfo("Watching %s, press Ctrl+C to stop", path)
	return w.Run(ctx)
}

func renderBatch(path string, compiler *fulltext.Compiler) error {
	f, err := batch.Load(config.AppFs, path)
	if err != nil {
		return err
	}
	if f.Requires != "" {
		ok, err := version.Get().AtLeast(f.Requires)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s requires prisma-fts %s or later, this is %s", path, f.Requires, version.Version)
		}
	}

	results := f.CompileAll(compiler, cfg.DefaultTable)
	ui.PrintTable([]string{"Name", "SQL", "Parameters"}, batchRows(results))

	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(results))
	}
	ui.PrintSuccess("Rendered %d requests", len(results))
	return nil
}

func batchRows(results []batch.Result) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		if r.Err != nil {
			rows[i] = []string{r.Entry.Name, ui.ErrorStyle.Render(r.Err.Error()), ""}
			continue
		}
		params := ""
		for j, p := range r.Fragment.Params {
			if j > 0 {
				params += ", "
			}
			params += fmt.Sprintf("@%s=%v", p.Name, p.Value)
		}
		rows[i] = []string{r.Entry.Name, r.Fragment.SQL, params}
	}
	return rows
}
