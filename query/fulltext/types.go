// Package fulltext compiles SQL Server full-text search requests into
// FREETEXT, CONTAINS, FREETEXTTABLE and CONTAINSTABLE fragments.
package fulltext

import (
	"database/sql"
	"fmt"
)

// Result columns exposed by FREETEXTTABLE and CONTAINSTABLE.
const (
	KeyColumn  = "KEY"
	RankColumn = "RANK"
)

// Mode selects the full-text function family.
type Mode int

const (
	// FreeText matches the meaning of the search text (FREETEXT, FREETEXTTABLE).
	FreeText Mode = iota
	// Contains evaluates a search condition (CONTAINS, CONTAINSTABLE).
	Contains
)

// String returns the predicate keyword for the mode.
func (m Mode) String() string {
	switch m {
	case FreeText:
		return "FREETEXT"
	case Contains:
		return "CONTAINS"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// tableFunction returns the table-valued function name for the mode.
func (m Mode) tableFunction() string {
	return m.String() + "TABLE"
}

func (m Mode) valid() bool {
	return m == FreeText || m == Contains
}

// ParseMode parses "freetext" or "contains" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch normalizeWord(s) {
	case "freetext", "freetexttable":
		return FreeText, nil
	case "contains", "containstable":
		return Contains, nil
	default:
		return 0, invalid("mode", "unknown full-text mode %q", s)
	}
}

// Target is the set of columns searched. No columns means every
// full-text indexed column of the source.
type Target struct {
	// Alias qualifies the target, e.g. "c_1" renders [c_1].* or [c_1].[Col].
	Alias   string
	Columns []string
}

// AllColumns targets every indexed column.
func AllColumns() Target {
	return Target{}
}

// Columns targets the given columns in order. Duplicates are kept.
func Columns(columns ...string) Target {
	return Target{Columns: columns}
}

// Of returns a copy of the target qualified by alias.
func (t Target) Of(alias string) Target {
	t.Alias = alias
	return t
}

// Language selects the word breaker and stemmer. Exactly one of Code and
// Name is set.
type Language struct {
	Code *int
	Name *string
	// Param binds the language as @Param instead of a literal.
	Param string
}

// LanguageCode returns a literal LCID language, e.g. 1033.
func LanguageCode(code int) *Language {
	return &Language{Code: &code}
}

// LanguageName returns a literal language alias, e.g. "English".
func LanguageName(name string) *Language {
	return &Language{Name: &name}
}

// Bind returns a copy of the language bound to the named parameter.
func (l *Language) Bind(param string) *Language {
	c := *l
	c.Param = param
	return &c
}

// Request describes a FREETEXT or CONTAINS search.
type Request struct {
	Mode   Mode
	Target Target
	// Text is the search text (FREETEXT) or search condition (CONTAINS).
	Text string
	// TextParam binds Text as @TextParam instead of an N'' literal.
	TextParam string
	Language  *Language
	// Top limits table-valued results to the highest ranked rows.
	Top *int
	// TopParam binds Top as @TopParam instead of a literal.
	TopParam string
}

// TableRequest describes a FREETEXTTABLE or CONTAINSTABLE search over Table.
type TableRequest struct {
	Request
	Table string
}

// Param is a named bind parameter referenced as @Name in a fragment.
type Param struct {
	Name  string
	Value interface{}
}

// Fragment is rendered SQL together with its bound parameters.
type Fragment struct {
	SQL    string
	Params []Param
}

// Args returns the parameters as database/sql named arguments.
func (f *Fragment) Args() []interface{} {
	args := make([]interface{}, len(f.Params))
	for i, p := range f.Params {
		args[i] = sql.Named(p.Name, p.Value)
	}
	return args
}

// String returns the SQL text.
func (f *Fragment) String() string {
	return f.SQL
}

// IntPtr is a helper for literal Top values.
func IntPtr(v int) *int {
	return &v
}
