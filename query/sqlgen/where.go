package sqlgen

// WhereClause represents a WHERE condition (can be nested)
type WhereClause struct {
	Conditions []Condition
	Groups     []*WhereClause // Nested WHERE clauses for AND/OR/NOT
	Operator   string         // "AND" or "OR"
	IsNot      bool           // true for NOT conditions
}

// Condition represents a single filter condition
type Condition struct {
	Field    string // may be qualified: "c.CategoryID"
	Operator string // "=", "!=", ">", "<", ">=", "<=", "IN", "NOT IN", "LIKE", "IS NULL", "IS NOT NULL"
	Value    interface{}
}

// NewWhereClause creates a new WHERE clause
func NewWhereClause() *WhereClause {
	return &WhereClause{Operator: "AND"}
}

// AddCondition adds a condition to the WHERE clause
func (w *WhereClause) AddCondition(condition Condition) *WhereClause {
	w.Conditions = append(w.Conditions, condition)
	return w
}

// AddGroup adds a nested WHERE clause
func (w *WhereClause) AddGroup(group *WhereClause) *WhereClause {
	w.Groups = append(w.Groups, group)
	return w
}

// IsEmpty returns true if the WHERE clause is empty
func (w *WhereClause) IsEmpty() bool {
	return w == nil || (len(w.Conditions) == 0 && len(w.Groups) == 0)
}
