package sqlgen

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

func categoriesFreeText(t *testing.T, text string) *fulltext.Fragment {
	t.Helper()
	frag, err := fulltext.CompileTableValued(fulltext.TableRequest{
		Table:   "Categories",
		Request: fulltext.Request{Mode: fulltext.FreeText, Target: fulltext.Columns("Description"), Text: text},
	})
	require.NoError(t, err)
	return frag
}

func TestGenerateFullTextSelect_InnerJoin(t *testing.T) {
	g := &SQLServerGenerator{}
	q, err := g.GenerateFullTextSelect(&FullTextSelect{
		Table: "Products",
		Alias: "p",
		Joins: []FullTextJoin{{
			Alias:     "c",
			KeyColumn: "CategoryID",
			Fragment:  categoriesFreeText(t, "sweetest candy bread and dry meat"),
		}},
		OrderBy: []OrderBy{{Field: "p.ProductName", Direction: "desc"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "SELECT [p].* FROM [Products] AS [p] "+
		"INNER JOIN FREETEXTTABLE([Categories], ([Description]), N'sweetest candy bread and dry meat') AS [c] "+
		"ON [p].[CategoryID] = [c].[KEY] "+
		"ORDER BY [p].[ProductName] DESC", q.SQL)
	assert.Empty(t, q.Args)
}

func TestGenerateFullTextSelect_LeftJoinOrderedByRank(t *testing.T) {
	g := &SQLServerGenerator{}
	q, err := g.GenerateFullTextSelect(&FullTextSelect{
		Table:       "Categories",
		Alias:       "c",
		Columns:     []string{"c.CategoryID", "c.CategoryName"},
		Joins:       []FullTextJoin{{Type: "left", Alias: "t", KeyColumn: "c.CategoryID", Fragment: categoriesFreeText(t, "bread")}},
		OrderByRank: "t",
		Limit:       intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "SELECT TOP 3 [c].[CategoryID], [c].[CategoryName] FROM [Categories] AS [c] "+
		"LEFT JOIN FREETEXTTABLE([Categories], ([Description]), N'bread') AS [t] "+
		"ON [c].[CategoryID] = [t].[KEY] "+
		"ORDER BY [t].[RANK] DESC", q.SQL)
}

func TestGenerateFullTextSelect_PredicatesAndWhere(t *testing.T) {
	bread, err := fulltext.CompilePredicate(fulltext.Request{
		Mode:   fulltext.FreeText,
		Target: fulltext.AllColumns().Of("c_1"),
		Text:   "bread",
	})
	require.NoError(t, err)
	meat, err := fulltext.CompilePredicate(fulltext.Request{
		Mode:     fulltext.Contains,
		Target:   fulltext.Columns("CategoryName", "Description").Of("c_1"),
		Text:     "meat",
		Language: fulltext.LanguageCode(1036).Bind("code"),
	})
	require.NoError(t, err)

	where := NewWhereClause().
		AddCondition(Condition{Field: "c_1.CategoryID", Operator: ">", Value: 2}).
		AddCondition(Condition{Field: "c_1.CategoryID", Operator: "IN", Value: []interface{}{3, 6}})

	g := &SQLServerGenerator{}
	q, err := g.GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Alias:      "c_1",
		Predicates: []*fulltext.Fragment{bread, meat},
		Where:      where,
		OrderBy:    []OrderBy{{Field: "c_1.CategoryID", Direction: "DESC"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "SELECT [c_1].* FROM [Categories] AS [c_1] "+
		"WHERE FREETEXT([c_1].*, N'bread') "+
		"AND CONTAINS(([c_1].[CategoryName], [c_1].[Description]), N'meat', LANGUAGE @code) "+
		"AND [c_1].[CategoryID] > @p1 AND [c_1].[CategoryID] IN (@p2, @p3) "+
		"ORDER BY [c_1].[CategoryID] DESC", q.SQL)
	assert.Equal(t, []interface{}{2, 3, 6, sql.Named("code", 1036)}, q.Args)
}

func TestGenerateFullTextSelect_OrWhereIsParenthesised(t *testing.T) {
	pred, err := fulltext.CompilePredicate(fulltext.Request{Mode: fulltext.Contains, Text: "bread"})
	require.NoError(t, err)

	where := &WhereClause{Operator: "OR", Conditions: []Condition{
		{Field: "CategoryID", Operator: "=", Value: 1},
		{Field: "Description", Operator: "IS NULL"},
	}}
	q, err := (&SQLServerGenerator{}).GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Predicates: []*fulltext.Fragment{pred},
		Where:      where,
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT [Categories].* FROM [Categories] "+
		"WHERE CONTAINS(*, N'bread') AND ([CategoryID] = @p1 OR [Description] IS NULL)", q.SQL)
}

func TestGenerateFullTextSelect_SharedParameters(t *testing.T) {
	mk := func(text string, code int) *fulltext.Fragment {
		frag, err := fulltext.CompilePredicate(fulltext.Request{
			Mode:     fulltext.FreeText,
			Text:     text,
			Language: fulltext.LanguageCode(code).Bind("code"),
		})
		require.NoError(t, err)
		return frag
	}

	g := &SQLServerGenerator{}
	q, err := g.GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Predicates: []*fulltext.Fragment{mk("bread", 1033), mk("meat", 1033)},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{sql.Named("code", 1033)}, q.Args)

	_, err = g.GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Predicates: []*fulltext.Fragment{mk("bread", 1033), mk("meat", 1036)},
	})
	assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)
}

func TestGenerateFullTextSelect_UncomparableSharedValues(t *testing.T) {
	mk := func(value []byte) *fulltext.Fragment {
		return &fulltext.Fragment{
			SQL:    "FREETEXT(*, @q)",
			Params: []fulltext.Param{{Name: "q", Value: value}},
		}
	}

	g := &SQLServerGenerator{}
	q, err := g.GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Predicates: []*fulltext.Fragment{mk([]byte("bread")), mk([]byte("bread"))},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{sql.Named("q", []byte("bread"))}, q.Args)

	_, err = g.GenerateFullTextSelect(&FullTextSelect{
		Table:      "Categories",
		Predicates: []*fulltext.Fragment{mk([]byte("bread")), mk([]byte("meat"))},
	})
	assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)
}

func TestGenerateFullTextSelect_PositionalNameCollision(t *testing.T) {
	mk := func(param string) *fulltext.Fragment {
		frag, err := fulltext.CompilePredicate(fulltext.Request{
			Mode:      fulltext.FreeText,
			Text:      "bread",
			TextParam: param,
		})
		require.NoError(t, err)
		return frag
	}
	where := NewWhereClause().
		AddCondition(Condition{Field: "c.CategoryID", Operator: "IN", Value: []interface{}{7, 8}})

	tests := []struct {
		name    string
		param   string
		wantErr bool
	}{
		{name: "first placeholder", param: "p1", wantErr: true},
		{name: "last placeholder upper case", param: "P2", wantErr: true},
		{name: "past last placeholder", param: "p3"},
		{name: "leading zero", param: "p01"},
		{name: "plain name", param: "q"},
	}

	g := &SQLServerGenerator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := g.GenerateFullTextSelect(&FullTextSelect{
				Table:      "Categories",
				Alias:      "c",
				Predicates: []*fulltext.Fragment{mk(tt.param)},
				Where:      where,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []interface{}{7, 8, sql.Named(tt.param, "bread")}, q.Args)
		})
	}
}

func TestGenerateFullTextSelect_Invalid(t *testing.T) {
	frag := categoriesFreeText(t, "bread")
	tests := []struct {
		name string
		sel  *FullTextSelect
	}{
		{name: "nil", sel: nil},
		{name: "no table", sel: &FullTextSelect{}},
		{name: "zero limit", sel: &FullTextSelect{Table: "Categories", Limit: intPtr(0)}},
		{name: "join without fragment", sel: &FullTextSelect{Table: "Categories", Joins: []FullTextJoin{{Alias: "t", KeyColumn: "CategoryID"}}}},
		{name: "join without alias", sel: &FullTextSelect{Table: "Categories", Joins: []FullTextJoin{{KeyColumn: "CategoryID", Fragment: frag}}}},
		{name: "bad join type", sel: &FullTextSelect{Table: "Categories", Joins: []FullTextJoin{{Type: "CROSS", Alias: "t", KeyColumn: "CategoryID", Fragment: frag}}}},
		{name: "unknown rank alias", sel: &FullTextSelect{Table: "Categories", OrderByRank: "t"}},
		{name: "nil predicate", sel: &FullTextSelect{Table: "Categories", Predicates: []*fulltext.Fragment{nil}}},
		{name: "bad operator", sel: &FullTextSelect{Table: "Categories", Where: NewWhereClause().AddCondition(Condition{Field: "a", Operator: "~~"})}},
		{name: "empty IN", sel: &FullTextSelect{Table: "Categories", Where: NewWhereClause().AddCondition(Condition{Field: "a", Operator: "IN"})}},
	}

	g := &SQLServerGenerator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := g.GenerateFullTextSelect(tt.sel)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)
		})
	}
}

func TestGenerateRankedKeys(t *testing.T) {
	top := 2
	frag, err := fulltext.CompileTableValued(fulltext.TableRequest{
		Table: "Categories",
		Request: fulltext.Request{
			Mode:     fulltext.FreeText,
			Text:     "seafood bread",
			Language: fulltext.LanguageCode(1053),
			Top:      &top,
			TopParam: "top",
		},
	})
	require.NoError(t, err)

	q, err := (&SQLServerGenerator{}).GenerateRankedKeys(frag)
	require.NoError(t, err)
	assert.Equal(t, "SELECT [ft].[KEY], [ft].[RANK] FROM FREETEXTTABLE([Categories], *, N'seafood bread', LANGUAGE 1053, @top) AS [ft] ORDER BY [ft].[RANK] DESC", q.SQL)
	assert.Equal(t, []interface{}{sql.Named("top", 2)}, q.Args)

	_, err = (&SQLServerGenerator{}).GenerateRankedKeys(nil)
	assert.Error(t, err)
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator("SQLServer")
	require.NoError(t, err)
	assert.NotNil(t, g)

	_, err = NewGenerator("postgresql")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "[c].*", quoteIdentifier("c.*"))
	assert.Equal(t, "[dbo].[Categories]", quoteIdentifier("dbo.Categories"))
}

func intPtr(v int) *int { return &v }
