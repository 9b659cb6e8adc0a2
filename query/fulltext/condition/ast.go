package condition

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Condition is a parsed search condition: OR-separated branches.
type Condition struct {
	Pos      lexer.Position
	Branches []*Conjunction `@@ ( ( "OR" | "|" ) @@ )*`
}

// Conjunction is a chain of AND / AND NOT operands.
type Conjunction struct {
	First *Proximity  `@@`
	Rest  []*Conjunct `@@*`
}

// Conjunct is one "AND [NOT] operand" step.
type Conjunct struct {
	Op      string     `@( "AND" | "&" )`
	Not     bool       `@( "NOT" | "!" )?`
	Operand *Proximity `@@`
}

// Proximity is a chain of operands joined by the generic NEAR operator.
type Proximity struct {
	Operands []*Primary `@@ ( ( "NEAR" | "~" ) @@ )*`
}

// Primary is a parenthesised condition, a custom proximity term, a
// generation term or a simple/prefix term.
type Primary struct {
	Pos     lexer.Position
	Group   *Condition `  "(" @@ ")"`
	Near    *NearFunc  `| @@`
	FormsOf *FormsOf   `| @@`
	Term    *Term      `| @@`
}

// Term is a word or a quoted phrase. Phrases keep their quotes.
type Term struct {
	Phrase string `  @Phrase`
	Word   string `| @( Word | Number )`
}

// NearFunc is NEAR((a, b, ...) [, distance [, order]]) or NEAR(a, b, ...).
type NearFunc struct {
	Grouped  []*Term `"NEAR" "(" ( "(" @@ ( "," @@ )* ")"`
	Distance string  `    ( "," @( Number | Word )`
	Order    string  `      ( "," @Word )? )?`
	Terms    []*Term `  | @@ ( "," @@ )+ ) ")"`
}

// FormsOf is FORMSOF(INFLECTIONAL|THESAURUS, term, ...).
type FormsOf struct {
	Kind  string  `"FORMSOF" "(" @( "INFLECTIONAL" | "THESAURUS" )`
	Terms []*Term `( "," @@ )+ ")"`
}

// String renders the condition with canonical keywords.
func (c *Condition) String() string {
	parts := make([]string, len(c.Branches))
	for i, b := range c.Branches {
		parts[i] = b.String()
	}
	return strings.Join(parts, " OR ")
}

func (c *Conjunction) String() string {
	var sb strings.Builder
	sb.WriteString(c.First.String())
	for _, r := range c.Rest {
		sb.WriteString(" AND ")
		if r.Not {
			sb.WriteString("NOT ")
		}
		sb.WriteString(r.Operand.String())
	}
	return sb.String()
}

func (p *Proximity) String() string {
	parts := make([]string, len(p.Operands))
	for i, o := range p.Operands {
		parts[i] = o.String()
	}
	return strings.Join(parts, " NEAR ")
}

func (p *Primary) String() string {
	switch {
	case p.Group != nil:
		return "(" + p.Group.String() + ")"
	case p.Near != nil:
		return p.Near.String()
	case p.FormsOf != nil:
		return p.FormsOf.String()
	case p.Term != nil:
		return p.Term.String()
	default:
		return ""
	}
}

func (t *Term) String() string {
	if t.Phrase != "" {
		return t.Phrase
	}
	return t.Word
}

func (n *NearFunc) String() string {
	if len(n.Grouped) == 0 {
		return "NEAR(" + joinTerms(n.Terms) + ")"
	}
	s := "NEAR((" + joinTerms(n.Grouped) + ")"
	if n.Distance != "" {
		s += ", " + strings.ToUpper(n.Distance)
		if n.Order != "" {
			s += ", " + strings.ToUpper(n.Order)
		}
	}
	return s + ")"
}

func (f *FormsOf) String() string {
	return "FORMSOF(" + f.Kind + ", " + joinTerms(f.Terms) + ")"
}

func joinTerms(terms []*Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Terms returns every word and phrase in the condition, in order.
func (c *Condition) Terms() []string {
	var out []string
	c.walk(func(t *Term) { out = append(out, t.String()) })
	return out
}

func (c *Condition) walk(fn func(*Term)) {
	for _, b := range c.Branches {
		b.First.walk(fn)
		for _, r := range b.Rest {
			r.Operand.walk(fn)
		}
	}
}

func (p *Proximity) walk(fn func(*Term)) {
	for _, o := range p.Operands {
		switch {
		case o.Group != nil:
			o.Group.walk(fn)
		case o.Near != nil:
			for _, t := range o.Near.Grouped {
				fn(t)
			}
			for _, t := range o.Near.Terms {
				fn(t)
			}
		case o.FormsOf != nil:
			for _, t := range o.FormsOf.Terms {
				fn(t)
			}
		case o.Term != nil:
			fn(o.Term)
		}
	}
}
