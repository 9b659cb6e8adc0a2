package executor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
	"github.com/satishbabariya/prisma-go-fts/query/sqlgen"
)

// Ranked is one row of a FREETEXTTABLE or CONTAINSTABLE result.
type Ranked[K any] struct {
	Key  K
	Rank int64
}

// ScanRanked maps (KEY, RANK) rows. Extra columns are an error.
func ScanRanked[K any](rows *sql.Rows) ([]Ranked[K], error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	if len(columns) != 2 {
		return nil, fmt.Errorf("ranked rows need %s and %s columns, got %v", fulltext.KeyColumn, fulltext.RankColumn, columns)
	}

	var out []Ranked[K]
	for rows.Next() {
		var r Ranked[K]
		if err := rows.Scan(&r.Key, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Rank compiles req, runs it and returns the matching keys, best match
// first. A nil compiler uses fulltext.NewCompiler().
func Rank[K any](ctx context.Context, db DB, compiler *fulltext.Compiler, req fulltext.TableRequest) ([]Ranked[K], error) {
	if compiler == nil {
		compiler = fulltext.NewCompiler()
	}
	frag, err := compiler.CompileTableValued(req)
	if err != nil {
		return nil, err
	}
	q, err := (&sqlgen.SQLServerGenerator{}).GenerateRankedKeys(frag)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("ranked query failed: %w", err)
	}
	defer rows.Close()

	return ScanRanked[K](rows)
}
