package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/satishbabariya/prisma-go-fts/internal/debug"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

// requestOptions holds the flags shared by render and search.
type requestOptions struct {
	mode          string
	predicate     bool
	table         string
	alias         string
	columns       []string
	text          string
	textParam     string
	language      string
	languageCode  int
	languageParam string
	top           int
	topParam      string
}

func (o *requestOptions) register(fs *pflag.FlagSet, withPredicate bool) {
	fs.StringVarP(&o.mode, "mode", "m", "freetext", "Full-text mode: freetext or contains")
	if withPredicate {
		fs.BoolVarP(&o.predicate, "predicate", "p", false, "Render FREETEXT/CONTAINS instead of the table-valued function")
	}
	fs.StringVarP(&o.table, "table", "t", "", "Table searched by the table-valued function (default: default_table from config)")
	fs.StringVar(&o.alias, "alias", "", "Alias qualifying the target columns")
	fs.StringSliceVarP(&o.columns, "columns", "c", nil, "Target columns, in order (default: all indexed columns)")
	fs.StringVar(&o.text, "text", "", "Search text or CONTAINS condition (or first argument)")
	fs.StringVar(&o.textParam, "text-param", "", "Bind the text as @name instead of a literal")
	fs.StringVarP(&o.language, "language", "l", "", "Language name, e.g. English")
	fs.IntVar(&o.languageCode, "language-code", 0, "Language code (LCID), e.g. 1033")
	fs.StringVar(&o.languageParam, "language-param", "", "Bind the language as @name instead of a literal")
	fs.IntVar(&o.top, "top", 0, "Limit table-valued results to the top n by rank")
	fs.StringVar(&o.topParam, "top-param", "", "Bind top as @name instead of a literal")
}

// build converts the flags. changed reports whether a flag was set, so a
// zero --top or --language-code is passed through and rejected by the
// compiler rather than silently dropped.
func (o *requestOptions) build(changed func(string) bool, defaultTable string) (fulltext.TableRequest, error) {
	mode, err := fulltext.ParseMode(o.mode)
	if err != nil {
		return fulltext.TableRequest{}, err
	}

	req := fulltext.TableRequest{
		Request: fulltext.Request{
			Mode:      mode,
			Target:    fulltext.Columns(o.columns...).Of(o.alias),
			Text:      o.text,
			TextParam: o.textParam,
			TopParam:  o.topParam,
		},
		Table: o.table,
	}
	if req.Table == "" && !o.predicate {
		req.Table = defaultTable
	}

	if changed("language") || changed("language-code") || o.languageParam != "" {
		lang := &fulltext.Language{Param: o.languageParam}
		if changed("language") {
			name := o.language
			lang.Name = &name
		}
		if changed("language-code") {
			code := o.languageCode
			lang.Code = &code
		}
		req.Language = lang
	}
	if changed("top") {
		top := o.top
		req.Top = &top
	}
	return req, nil
}

func (o *requestOptions) compile(c *fulltext.Compiler, req fulltext.TableRequest) (*fulltext.Fragment, error) {
	if o.predicate {
		if req.Table != "" {
			return nil, fmt.Errorf("%w: --table cannot be used with --predicate", fulltext.ErrInvalidArgument)
		}
		return c.CompilePredicate(req.Request)
	}
	return c.CompileTableValued(req)
}

// newCompiler builds a compiler from the loaded configuration.
func newCompiler(validate bool) *fulltext.Compiler {
	opts := []fulltext.Option{fulltext.WithLogger(debug.For("fulltext"))}
	if validate {
		opts = append(opts, fulltext.WithConditionValidation())
	}
	if cfg.CacheSize > 0 {
		opts = append(opts, fulltext.WithCache(cfg.CacheSize, 0))
	}
	return fulltext.NewCompiler(opts...)
}

// paramRows formats bound parameters for ui.PrintTable.
func paramRows(frag *fulltext.Fragment) [][]string {
	rows := make([][]string, len(frag.Params))
	for i, p := range frag.Params {
		value := fmt.Sprint(p.Value)
		if s, ok := p.Value.(string); ok {
			value = strconv.Quote(s)
		}
		rows[i] = []string{"@" + p.Name, fmt.Sprintf("%T", p.Value), value}
	}
	return rows
}
