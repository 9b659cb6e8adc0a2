// Package condition parses SQL Server CONTAINS search conditions.
package condition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrSyntax is returned for malformed search conditions.
var ErrSyntax = errors.New("invalid search condition")

var parser = participle.MustBuild[Condition](
	participle.Lexer(conditionLexer),
	participle.Elide("Whitespace"),
	participle.Map(retype, "Word"),
	participle.UseLookahead(4),
)

// Parse parses a CONTAINS search condition.
func Parse(input string) (*Condition, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: condition is empty", ErrSyntax)
	}

	cond, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if err := check(cond); err != nil {
		return nil, err
	}
	return cond, nil
}

// Validate reports whether input is a well-formed search condition.
func Validate(input string) error {
	_, err := Parse(input)
	return err
}

// Normalize parses input and renders it with canonical operators:
// & -> AND, &! -> AND NOT, | -> OR, ~ -> NEAR.
func Normalize(input string) (string, error) {
	cond, err := Parse(input)
	if err != nil {
		return "", err
	}
	return cond.String(), nil
}

// check applies the rules the grammar does not express.
func check(cond *Condition) error {
	var err error
	cond.walkPrimaries(func(p *Primary) {
		if err != nil {
			return
		}
		switch {
		case p.Term != nil && p.Term.Phrase != "":
			if strings.Trim(p.Term.Phrase, `"* `) == "" {
				err = fmt.Errorf("%w: empty phrase at %s", ErrSyntax, p.Pos)
			}
		case p.Near != nil && p.Near.Distance != "":
			if !isDistance(p.Near.Distance) {
				err = fmt.Errorf("%w: NEAR distance %q must be an integer or MAX", ErrSyntax, p.Near.Distance)
				return
			}
			if o := strings.ToUpper(p.Near.Order); o != "" && o != "TRUE" && o != "FALSE" {
				err = fmt.Errorf("%w: NEAR match order %q must be TRUE or FALSE", ErrSyntax, p.Near.Order)
			}
		}
	})
	return err
}

func isDistance(s string) bool {
	return strings.EqualFold(s, "MAX") || isDigits(s)
}

func (c *Condition) walkPrimaries(fn func(*Primary)) {
	for _, b := range c.Branches {
		b.First.walkPrimaries(fn)
		for _, r := range b.Rest {
			r.Operand.walkPrimaries(fn)
		}
	}
}

func (p *Proximity) walkPrimaries(fn func(*Primary)) {
	for _, o := range p.Operands {
		fn(o)
		if o.Group != nil {
			o.Group.walkPrimaries(fn)
		}
	}
}
