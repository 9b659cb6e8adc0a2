// Package executor runs full-text queries and maps results to structs.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/satishbabariya/prisma-go-fts/internal/debug"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
	"github.com/satishbabariya/prisma-go-fts/query/sqlgen"
)

// DB is the subset of *sql.DB, *sql.Conn and *sql.Tx used by the executor.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Executor executes full-text queries and maps results
type Executor struct {
	db        DB
	compiler  *fulltext.Compiler
	generator *sqlgen.SQLServerGenerator
	logger    *slog.Logger
}

// NewExecutor creates a new query executor. A nil compiler uses the
// package default.
func NewExecutor(db DB, compiler *fulltext.Compiler) *Executor {
	if compiler == nil {
		compiler = fulltext.NewCompiler()
	}
	return &Executor{
		db:        db,
		compiler:  compiler,
		generator: &sqlgen.SQLServerGenerator{},
		logger:    debug.For("executor"),
	}
}

// Query runs q and maps every row into dest, a pointer to a slice of
// structs (or struct pointers).
func (e *Executor) Query(ctx context.Context, q *sqlgen.Query, dest interface{}) error {
	e.logger.Debug("executing query", "sql", q.SQL, "args", len(q.Args))

	rows, err := e.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, dest)
}

// Search renders sel and maps the matching rows into dest.
func (e *Executor) Search(ctx context.Context, sel *sqlgen.FullTextSelect, dest interface{}) error {
	q, err := e.generator.GenerateFullTextSelect(sel)
	if err != nil {
		return err
	}
	return e.Query(ctx, q, dest)
}

// Rank runs a table-valued full-text request and returns its keys, best
// match first.
func (e *Executor) Rank(ctx context.Context, req fulltext.TableRequest) ([]Ranked[int64], error) {
	return Rank[int64](ctx, e.db, e.compiler, req)
}

// scanRows scans multiple rows into a slice
func scanRows(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice, got %T", dest)
	}

	sliceValue := destValue.Elem()
	elementType := sliceValue.Type().Elem()
	isPtr := elementType.Kind() == reflect.Ptr
	if isPtr {
		elementType = elementType.Elem()
	}
	if elementType.Kind() != reflect.Struct {
		return fmt.Errorf("dest elements must be structs, got %s", elementType)
	}

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}

	for rows.Next() {
		element := reflect.New(elementType)
		if err := scanRowIntoStruct(rows, columns, element.Interface()); err != nil {
			return err
		}
		if isPtr {
			sliceValue = reflect.Append(sliceValue, element)
		} else {
			sliceValue = reflect.Append(sliceValue, element.Elem())
		}
	}

	destValue.Elem().Set(sliceValue)
	return rows.Err()
}

// scanRowIntoStruct scans a row into a struct
func scanRowIntoStruct(rows *sql.Rows, columns []string, dest interface{}) error {
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return mapValuesToStruct(columns, values, dest)
}

// mapValuesToStruct maps database values to struct fields. Columns match
// the db tag or the snake_case field name, ignoring case.
func mapValuesToStruct(columns []string, values []interface{}, dest interface{}) error {
	v := reflect.ValueOf(dest).Elem()
	t := v.Type()

	columnMap := make(map[string]int, len(columns))
	for i, col := range columns {
		columnMap[strings.ToLower(col)] = i
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		columnName := field.Tag.Get("db")
		if columnName == "-" {
			continue
		}
		if columnName == "" {
			columnName = toSnakeCase(field.Name)
		}

		colIndex, ok := columnMap[strings.ToLower(columnName)]
		if !ok {
			continue
		}

		value := values[colIndex]
		if value == nil {
			fieldValue.Set(reflect.Zero(fieldValue.Type()))
			continue
		}
		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a struct field value from a database value
func setFieldValue(fieldValue reflect.Value, value interface{}) error {
	fieldType := fieldValue.Type()

	if fieldType.Kind() == reflect.Ptr {
		elemValue := reflect.New(fieldType.Elem()).Elem()
		if err := setFieldValue(elemValue, value); err != nil {
			return err
		}
		fieldValue.Set(elemValue.Addr())
		return nil
	}

	// Drivers return text columns as []byte
	if b, ok := value.([]byte); ok && fieldType.Kind() == reflect.String {
		fieldValue.SetString(string(b))
		return nil
	}

	valueValue := reflect.ValueOf(value)
	valueType := valueValue.Type()
	if valueType.AssignableTo(fieldType) {
		fieldValue.Set(valueValue)
		return nil
	}
	// int -> string conversion yields a rune, never a number's digits
	numericToString := fieldType.Kind() == reflect.String && valueType.Kind() != reflect.String
	if valueType.ConvertibleTo(fieldType) && !numericToString {
		fieldValue.Set(valueValue.Convert(fieldType))
		return nil
	}

	return fmt.Errorf("cannot convert %s to %s", valueType, fieldType)
}

// toSnakeCase converts PascalCase to snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
