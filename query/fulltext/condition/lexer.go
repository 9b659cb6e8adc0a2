package condition

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// conditionLexer tokenizes CONTAINS search conditions.
var conditionLexer = lexer.MustSimple([]lexer.SimpleRule{
	// "simple phrase" or "prefix*"; embedded quotes are doubled
	{Name: "Phrase", Pattern: `"(?:[^"]|"")*"`},

	// Word swallows whole letter runs, including non-ASCII letters.
	// Keyword and Number are assigned by retype, never lexed directly.
	{Name: "Word", Pattern: `[\p{L}\p{N}_][\p{L}\p{N}_'\-.]*`},
	{Name: "Keyword", Pattern: `(?i:AND|OR|NOT|NEAR|FORMSOF|INFLECTIONAL|THESAURUS)`},
	{Name: "Number", Pattern: `\d+`},

	// & is AND, | is OR, ! is NOT, ~ is NEAR
	{Name: "Punct", Pattern: `[(),~&|!]`},

	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	keywordType = conditionLexer.Symbols()["Keyword"]
	numberType  = conditionLexer.Symbols()["Number"]

	keywords = map[string]bool{
		"AND": true, "OR": true, "NOT": true, "NEAR": true,
		"FORMSOF": true, "INFLECTIONAL": true, "THESAURUS": true,
	}
)

// retype turns Word tokens that are exactly a keyword (any case) into
// upper-cased Keyword tokens, and all-digit words into Number tokens.
func retype(tok lexer.Token) (lexer.Token, error) {
	if upper := strings.ToUpper(tok.Value); keywords[upper] {
		tok.Type = keywordType
		tok.Value = upper
		return tok, nil
	}
	if isDigits(tok.Value) {
		tok.Type = numberType
	}
	return tok, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
