package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext/condition"
)

type requestAnswers struct {
	Mode      string
	Predicate bool
	Table     string
	Columns   string
	Text      string
	Language  string
	Top       string
}

// askRequest prompts for a request, filling opts. The returned func reports
// which flags the answers set.
func askRequest(opts *requestOptions, defaultTable string) (func(string) bool, error) {
	defaultMode := "freetext"
	if m, err := fulltext.ParseMode(opts.mode); err == nil && m == fulltext.Contains {
		defaultMode = "contains"
	}

	answers := requestAnswers{}
	questions := []*survey.Question{
		{
			Name:   "mode",
			Prompt: &survey.Select{Message: "Mode:", Options: []string{"freetext", "contains"}, Default: defaultMode},
		},
		{
			Name:   "predicate",
			Prompt: &survey.Confirm{Message: "Render a predicate (FREETEXT/CONTAINS) instead of a table-valued function?", Default: opts.predicate},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return nil, err
	}

	more := []*survey.Question{}
	if !answers.Predicate {
		table := opts.table
		if table == "" {
			table = defaultTable
		}
		more = append(more, &survey.Question{
			Name:     "table",
			Prompt:   &survey.Input{Message: "Table:", Default: table},
			Validate: survey.Required,
		})
	}
	more = append(more,
		&survey.Question{
			Name:   "columns",
			Prompt: &survey.Input{Message: "Columns (comma separated, empty for all):", Default: strings.Join(opts.columns, ",")},
		},
		&survey.Question{
			Name:     "text",
			Prompt:   &survey.Input{Message: "Search text:", Default: opts.text},
			Validate: survey.ComposeValidators(survey.Required, conditionValidator(answers.Mode)),
		},
		&survey.Question{
			Name:   "language",
			Prompt: &survey.Input{Message: "Language (name or LCID, empty for default):", Default: opts.language},
		},
	)
	if !answers.Predicate {
		more = append(more, &survey.Question{
			Name:     "top",
			Prompt:   &survey.Input{Message: "Top n by rank (empty for all):"},
			Validate: positiveOrEmpty,
		})
	}
	if err := survey.Ask(more, &answers); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	opts.mode = answers.Mode
	opts.predicate = answers.Predicate
	opts.table = strings.TrimSpace(answers.Table)
	opts.columns = splitColumns(answers.Columns)
	opts.text = answers.Text

	if lang := strings.TrimSpace(answers.Language); lang != "" {
		if code, err := strconv.Atoi(lang); err == nil {
			opts.languageCode = code
			set["language-code"] = true
		} else {
			opts.language = lang
			set["language"] = true
		}
	}
	if top := strings.TrimSpace(answers.Top); top != "" {
		opts.top, _ = strconv.Atoi(top)
		set["top"] = true
	}
	return func(name string) bool { return set[name] }, nil
}

func splitColumns(s string) []string {
	var cols []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func conditionValidator(mode string) survey.Validator {
	return func(ans interface{}) error {
		if mode != "contains" {
			return nil
		}
		s, _ := ans.(string)
		return condition.Validate(s)
	}
}

func positiveOrEmpty(ans interface{}) error {
	s, _ := ans.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
		return errors.New("top must be a positive integer")
	}
	return nil
}
