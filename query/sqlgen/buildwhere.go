package sqlgen

import (
	"fmt"
	"strings"
)

// buildWhereRecursive builds a WHERE clause with support for nested conditions
func buildWhereRecursive(where *WhereClause, argIndex *int) (string, []interface{}, error) {
	if where.IsEmpty() {
		return "", nil, nil
	}

	var parts []string
	var args []interface{}

	for _, cond := range where.Conditions {
		condSQL, condArgs, err := buildCondition(cond, argIndex)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, condSQL)
		args = append(args, condArgs...)
	}

	for _, group := range where.Groups {
		groupSQL, groupArgs, err := buildWhereRecursive(group, argIndex)
		if err != nil {
			return "", nil, err
		}
		if groupSQL != "" {
			parts = append(parts, "("+groupSQL+")")
			args = append(args, groupArgs...)
		}
	}

	if len(parts) == 0 {
		return "", nil, nil
	}

	op := "AND"
	if strings.EqualFold(where.Operator, "OR") {
		op = "OR"
	}

	result := strings.Join(parts, " "+op+" ")
	if where.IsNot {
		result = "NOT (" + result + ")"
	}
	return result, args, nil
}

// buildCondition builds a single condition
func buildCondition(cond Condition, argIndex *int) (string, []interface{}, error) {
	field := quoteIdentifier(cond.Field)

	switch op := strings.ToUpper(cond.Operator); op {
	case "=", "!=", "<>", ">", "<", ">=", "<=", "LIKE":
		sql := fmt.Sprintf("%s %s %s", field, op, placeholder(*argIndex))
		(*argIndex)++
		return sql, []interface{}{cond.Value}, nil

	case "IN", "NOT IN":
		values, ok := cond.Value.([]interface{})
		if !ok || len(values) == 0 {
			return "", nil, invalidSelect("%s on %s needs a non-empty []interface{} value", op, cond.Field)
		}
		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = placeholder(*argIndex)
			(*argIndex)++
		}
		return fmt.Sprintf("%s %s (%s)", field, op, strings.Join(placeholders, ", ")), values, nil

	case "IS NULL", "IS NOT NULL":
		return field + " " + op, nil, nil

	default:
		return "", nil, invalidSelect("unsupported operator %q", cond.Operator)
	}
}
