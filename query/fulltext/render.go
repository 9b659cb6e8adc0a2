package fulltext

import (
	"regexp"
	"strconv"
	"strings"
)

var paramNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdentifier brackets a SQL Server identifier. Dotted names are
// quoted per part: dbo.Categories -> [dbo].[Categories].
func QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "[" + strings.ReplaceAll(p, "]", "]]") + "]"
	}
	return strings.Join(parts, ".")
}

// QuoteString renders a Unicode string literal: N'...'.
func QuoteString(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// argument is one rendered function argument: either literal SQL text or a
// reference to a bound parameter.
type argument struct {
	literal string
	param   *Param
}

func (a argument) sql() string {
	if a.param != nil {
		return "@" + a.param.Name
	}
	return a.literal
}

// plan is a validated request ready for rendering.
type plan struct {
	mode     Mode
	table    string
	target   string
	text     argument
	language *argument
	top      *argument
}

func (p *plan) params() []Param {
	var params []Param
	for _, a := range []*argument{&p.text, p.language, p.top} {
		if a != nil && a.param != nil {
			params = append(params, *a.param)
		}
	}
	return params
}

// render emits fn(args). LANGUAGE always precedes top_n_by_rank.
func (p *plan) render(fn string) string {
	var sb strings.Builder
	sb.WriteString(fn)
	sb.WriteByte('(')
	if p.table != "" {
		sb.WriteString(p.table)
		sb.WriteString(", ")
	}
	sb.WriteString(p.target)
	sb.WriteString(", ")
	sb.WriteString(p.text.sql())
	if p.language != nil {
		sb.WriteString(", LANGUAGE ")
		sb.WriteString(p.language.sql())
	}
	if p.top != nil {
		sb.WriteString(", ")
		sb.WriteString(p.top.sql())
	}
	sb.WriteByte(')')
	return sb.String()
}

func renderTarget(t Target) (string, error) {
	prefix := ""
	if t.Alias != "" {
		prefix = QuoteIdentifier(t.Alias) + "."
	}
	if len(t.Columns) == 0 {
		return prefix + "*", nil
	}

	cols := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == "" {
			return "", invalid("columns", "column %d is empty", i)
		}
		cols[i] = prefix + QuoteIdentifier(col)
	}
	return "(" + strings.Join(cols, ", ") + ")", nil
}

// binder hands out parameters and rejects names bound twice.
type binder struct {
	seen map[string]string
}

func (b *binder) bind(field, name string, value interface{}) (*Param, error) {
	name = strings.TrimPrefix(name, "@")
	if !paramNamePattern.MatchString(name) {
		return nil, invalid(field, "invalid parameter name %q", name)
	}
	if b.seen == nil {
		b.seen = make(map[string]string)
	}
	key := strings.ToLower(name)
	if other, ok := b.seen[key]; ok {
		return nil, invalid(field, "parameter @%s is already bound by %s", name, other)
	}
	b.seen[key] = field
	return &Param{Name: name, Value: value}, nil
}

func textArgument(b *binder, req *Request) (argument, error) {
	if strings.TrimSpace(req.Text) == "" {
		return argument{}, invalid("text", "search text is empty")
	}
	if req.TextParam != "" {
		p, err := b.bind("text", req.TextParam, req.Text)
		if err != nil {
			return argument{}, err
		}
		return argument{param: p}, nil
	}
	return argument{literal: QuoteString(req.Text)}, nil
}

func languageArgument(b *binder, lang *Language) (*argument, error) {
	if lang == nil {
		return nil, nil
	}

	var value interface{}
	var literal string
	switch {
	case lang.Code != nil && lang.Name != nil:
		return nil, invalid("language", "both a language code and a language name are set")
	case lang.Code != nil:
		if *lang.Code < 0 {
			return nil, invalid("language", "language code %d is negative", *lang.Code)
		}
		value = *lang.Code
		literal = strconv.Itoa(*lang.Code)
	case lang.Name != nil:
		if strings.TrimSpace(*lang.Name) == "" {
			return nil, invalid("language", "language name is empty")
		}
		value = *lang.Name
		literal = QuoteString(*lang.Name)
	default:
		return nil, invalid("language", "neither a language code nor a language name is set")
	}

	if lang.Param != "" {
		p, err := b.bind("language", lang.Param, value)
		if err != nil {
			return nil, err
		}
		return &argument{param: p}, nil
	}
	return &argument{literal: literal}, nil
}

func topArgument(b *binder, req *Request) (*argument, error) {
	if req.Top == nil {
		if req.TopParam != "" {
			return nil, invalid("top", "parameter @%s has no value", strings.TrimPrefix(req.TopParam, "@"))
		}
		return nil, nil
	}
	if *req.Top <= 0 {
		return nil, invalid("top", "top must be positive, got %d", *req.Top)
	}
	if req.TopParam != "" {
		p, err := b.bind("top", req.TopParam, *req.Top)
		if err != nil {
			return nil, err
		}
		return &argument{param: p}, nil
	}
	return &argument{literal: strconv.Itoa(*req.Top)}, nil
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
