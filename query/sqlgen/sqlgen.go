// Package sqlgen generates SQL Server statements that embed full-text fragments.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

// Query represents a SQL query with arguments
type Query struct {
	SQL  string
	Args []interface{}
}

// OrderBy represents an ORDER BY clause
type OrderBy struct {
	Field     string
	Direction string // "ASC" or "DESC"
}

// NewGenerator creates a generator for the given provider. Full-text
// functions are SQL Server only.
func NewGenerator(provider string) (*SQLServerGenerator, error) {
	switch strings.ToLower(provider) {
	case "sqlserver", "mssql":
		return &SQLServerGenerator{}, nil
	default:
		return nil, fmt.Errorf("%w: provider %q has no full-text support", ErrUnsupportedProvider, provider)
	}
}

// quoteIdentifier quotes a possibly qualified identifier for SQL Server:
// c.CategoryName -> [c].[CategoryName], c.* -> [c].*
func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = fulltext.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func placeholder(i int) string {
	return fmt.Sprintf("@p%d", i)
}
