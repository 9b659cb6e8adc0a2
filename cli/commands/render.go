package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-go-fts/cli/internal/ui"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext/condition"
)

var renderCmd = &cobra.Command{
	Use:   "render [text]",
	Short: "Render a full-text function call",
	Long: `Render FREETEXTTABLE/CONTAINSTABLE (default) or, with --predicate,
FREETEXT/CONTAINS from flags.

Examples:
  prisma-fts render -t Categories -c Description "sweetest candy bread and dry meat"
  prisma-fts render -m contains -t Categories -l Thai --top 2 food
  prisma-fts render -p -m contains --alias c_1 --text-param q "bread OR meat"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderOpts        requestOptions
	renderValidate    bool
	renderExplain     bool
	renderInteractive bool
)

func init() {
	renderOpts.register(renderCmd.Flags(), true)
	renderCmd.Flags().BoolVar(&renderValidate, "validate", false, "Parse CONTAINS conditions before rendering (default: validate_conditions from config)")
	renderCmd.Flags().BoolVar(&renderExplain, "explain", false, "Explain the rendered call")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false, "Prompt for the request")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		renderOpts.text = args[0]
	}
	changed := cmd.Flags().Changed
	if renderInteractive {
		var err error
		if changed, err = askRequest(&renderOpts, cfg.DefaultTable); err != nil {
			return err
		}
	}

	req, err := renderOpts.build(changed, cfg.DefaultTable)
	if err != nil {
		return err
	}

	validate := cfg.ValidateConditions
	if cmd.Flags().Changed("validate") {
		validate = renderValidate
	}
	frag, err := renderOpts.compile(newCompiler(validate), req)
	if err != nil {
		return err
	}

	ui.PrintSQL(frag.SQL)
	if len(frag.Params) > 0 {
		fmt.Println()
		ui.PrintTable([]string{"Parameter", "Type", "Value"}, paramRows(frag))
	}

	if renderExplain {
		fmt.Println()
		return ui.PrintMarkdown(explain(req, frag, renderOpts.predicate))
	}
	return nil
}

// explain describes a rendered call as markdown.
func explain(req fulltext.TableRequest, frag *fulltext.Fragment, predicate bool) string {
	var sb strings.Builder

	fn := req.Mode.String()
	if !predicate {
		fn += "TABLE"
	}
	fmt.Fprintf(&sb, "# %s\n\n", fn)
	fmt.Fprintf(&sb, "```sql\n%s\n```\n\n", frag.SQL)

	if !predicate {
		fmt.Fprintf(&sb, "- **Source**: table `%s`; returns `%s` and `%s` columns\n",
			req.Table, fulltext.KeyColumn, fulltext.RankColumn)
	}

	switch {
	case len(req.Target.Columns) == 0 && req.Target.Alias != "":
		fmt.Fprintf(&sb, "- **Columns**: every full-text indexed column of `%s`\n", req.Target.Alias)
	case len(req.Target.Columns) == 0:
		sb.WriteString("- **Columns**: every full-text indexed column\n")
	default:
		fmt.Fprintf(&sb, "- **Columns**: %s\n", codeList(req.Target.Columns))
	}

	if req.Mode == fulltext.Contains {
		if normalized, err := condition.Normalize(req.Text); err == nil {
			fmt.Fprintf(&sb, "- **Condition**: `%s`\n", normalized)
		} else {
			fmt.Fprintf(&sb, "- **Condition**: `%s` (does not parse: %v)\n", req.Text, err)
		}
	} else {
		fmt.Fprintf(&sb, "- **Text**: matched by meaning: `%s`\n", req.Text)
	}

	if req.Language != nil {
		switch {
		case req.Language.Code != nil:
			fmt.Fprintf(&sb, "- **Language**: LCID %d\n", *req.Language.Code)
		case req.Language.Name != nil:
			fmt.Fprintf(&sb, "- **Language**: %s\n", *req.Language.Name)
		}
	}
	if req.Top != nil {
		fmt.Fprintf(&sb, "- **Top**: best %d rows by rank\n", *req.Top)
	}

	if len(frag.Params) > 0 {
		sb.WriteString("\n## Parameters\n\n| name | value |\n|---|---|\n")
		for _, p := range frag.Params {
			fmt.Fprintf(&sb, "| `@%s` | `%v` |\n", p.Name, p.Value)
		}
	}
	return sb.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}
