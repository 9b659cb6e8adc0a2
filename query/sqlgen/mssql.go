package sqlgen

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

// SQLServerGenerator generates SQL Server (T-SQL) queries
type SQLServerGenerator struct{}

// FullTextJoin joins a FREETEXTTABLE/CONTAINSTABLE result to the base table
// on its KEY column.
type FullTextJoin struct {
	Type      string // "INNER" (default) or "LEFT"
	Alias     string
	KeyColumn string // base column compared with [Alias].[KEY]; unqualified names use the base alias
	Fragment  *fulltext.Fragment
}

// FullTextSelect describes a SELECT that embeds full-text fragments as
// joined tables and as WHERE predicates.
type FullTextSelect struct {
	Table   string
	Alias   string
	Columns []string // empty selects every column of the base table

	Joins      []FullTextJoin
	Predicates []*fulltext.Fragment // AND-ed with Where
	Where      *WhereClause

	OrderByRank string // join alias whose [RANK] orders the result, descending
	OrderBy     []OrderBy
	Limit       *int
}

// GenerateFullTextSelect renders sel. Positional arguments (@p1...) from
// Where come first in Args, followed by the fragments' named parameters.
func (g *SQLServerGenerator) GenerateFullTextSelect(sel *FullTextSelect) (*Query, error) {
	if sel == nil || strings.TrimSpace(sel.Table) == "" {
		return nil, invalidSelect("table name is empty")
	}

	var parts []string
	var named namedParams
	argIndex := 1

	base := quoteIdentifier(sel.Table)
	if sel.Alias != "" {
		base = fulltext.QuoteIdentifier(sel.Alias)
	}

	// SELECT [TOP n] columns
	selectPart := "SELECT"
	if sel.Limit != nil {
		if *sel.Limit <= 0 {
			return nil, invalidSelect("limit must be positive, got %d", *sel.Limit)
		}
		selectPart += fmt.Sprintf(" TOP %d", *sel.Limit)
	}
	if len(sel.Columns) == 0 {
		selectPart += " " + base + ".*"
	} else {
		quotedCols := make([]string, len(sel.Columns))
		for i, col := range sel.Columns {
			quotedCols[i] = quoteIdentifier(col)
		}
		selectPart += " " + strings.Join(quotedCols, ", ")
	}
	parts = append(parts, selectPart)

	// FROM table
	from := "FROM " + quoteIdentifier(sel.Table)
	if sel.Alias != "" {
		from += " AS " + fulltext.QuoteIdentifier(sel.Alias)
	}
	parts = append(parts, from)

	// JOINs
	aliases := make(map[string]bool, len(sel.Joins))
	for i, join := range sel.Joins {
		if join.Fragment == nil {
			return nil, invalidSelect("join %d has no full-text fragment", i)
		}
		if join.Alias == "" || join.KeyColumn == "" {
			return nil, invalidSelect("join %d needs an alias and a key column", i)
		}
		joinType := strings.ToUpper(strings.TrimSpace(join.Type))
		switch joinType {
		case "":
			joinType = "INNER"
		case "INNER", "LEFT":
		default:
			return nil, invalidSelect("unsupported join type %q", join.Type)
		}

		key := join.KeyColumn
		if !strings.Contains(key, ".") {
			key = base + "." + fulltext.QuoteIdentifier(key)
		} else {
			key = quoteIdentifier(key)
		}
		alias := fulltext.QuoteIdentifier(join.Alias)
		parts = append(parts, fmt.Sprintf("%s JOIN %s AS %s ON %s = %s.%s",
			joinType, join.Fragment.SQL, alias, key, alias, fulltext.QuoteIdentifier(fulltext.KeyColumn)))

		if err := named.add(join.Fragment); err != nil {
			return nil, err
		}
		aliases[strings.ToLower(join.Alias)] = true
	}

	// WHERE clause
	var where []string
	for i, pred := range sel.Predicates {
		if pred == nil {
			return nil, invalidSelect("predicate %d is nil", i)
		}
		where = append(where, pred.SQL)
		if err := named.add(pred); err != nil {
			return nil, err
		}
	}
	whereSQL, args, err := buildWhereRecursive(sel.Where, &argIndex)
	if err != nil {
		return nil, err
	}
	if err := named.checkPositional(argIndex - 1); err != nil {
		return nil, err
	}
	if whereSQL != "" {
		if len(where) > 0 && (strings.EqualFold(sel.Where.Operator, "OR") || len(sel.Where.Groups) > 0) {
			whereSQL = "(" + whereSQL + ")"
		}
		where = append(where, whereSQL)
	}
	if len(where) > 0 {
		parts = append(parts, "WHERE "+strings.Join(where, " AND "))
	}

	// ORDER BY
	var orderParts []string
	if sel.OrderByRank != "" {
		if !aliases[strings.ToLower(sel.OrderByRank)] {
			return nil, invalidSelect("rank ordering refers to unknown join %q", sel.OrderByRank)
		}
		orderParts = append(orderParts, fmt.Sprintf("%s.%s DESC",
			fulltext.QuoteIdentifier(sel.OrderByRank), fulltext.QuoteIdentifier(fulltext.RankColumn)))
	}
	for _, ob := range sel.OrderBy {
		direction := "ASC"
		if strings.EqualFold(ob.Direction, "DESC") {
			direction = "DESC"
		}
		orderParts = append(orderParts, fmt.Sprintf("%s %s", quoteIdentifier(ob.Field), direction))
	}
	if len(orderParts) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(orderParts, ", "))
	}

	return &Query{
		SQL:  strings.Join(parts, " "),
		Args: append(args, named.args()...),
	}, nil
}

// GenerateRankedKeys selects the KEY and RANK columns of a table-valued
// fragment, best match first.
func (g *SQLServerGenerator) GenerateRankedKeys(frag *fulltext.Fragment) (*Query, error) {
	if frag == nil {
		return nil, invalidSelect("fragment is nil")
	}
	key := fulltext.QuoteIdentifier(fulltext.KeyColumn)
	rank := fulltext.QuoteIdentifier(fulltext.RankColumn)
	return &Query{
		SQL:  fmt.Sprintf("SELECT [ft].%s, [ft].%s FROM %s AS [ft] ORDER BY [ft].%s DESC", key, rank, frag.SQL, rank),
		Args: frag.Args(),
	}, nil
}

// namedParams merges fragment parameters; a name may repeat only with the
// same value.
type namedParams struct {
	params []fulltext.Param
	index  map[string]int
}

func (n *namedParams) add(frag *fulltext.Fragment) error {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	for _, p := range frag.Params {
		key := strings.ToLower(p.Name)
		if i, ok := n.index[key]; ok {
			if !reflect.DeepEqual(n.params[i].Value, p.Value) {
				return invalidSelect("parameter @%s is bound to %v and %v", p.Name, n.params[i].Value, p.Value)
			}
			continue
		}
		n.index[key] = len(n.params)
		n.params = append(n.params, p)
	}
	return nil
}

// checkPositional rejects named parameters that collide with the
// positional placeholders @p1..@p<used>.
func (n *namedParams) checkPositional(used int) error {
	for _, p := range n.params {
		name := strings.ToLower(p.Name)
		if !strings.HasPrefix(name, "p") {
			continue
		}
		i, err := strconv.Atoi(name[1:])
		if err != nil || name[1:] != strconv.Itoa(i) {
			continue
		}
		if i >= 1 && i <= used {
			return invalidSelect("parameter @%s collides with a WHERE placeholder", p.Name)
		}
	}
	return nil
}

func (n *namedParams) args() []interface{} {
	return (&fulltext.Fragment{Params: n.params}).Args()
}
