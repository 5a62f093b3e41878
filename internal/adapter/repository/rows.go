package repository

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// querier is satisfied by *sql.Selector and the other ent builders.
type querier interface {
	Query() (string, []any)
}

func execQuery(ctx context.Context, q dialect.ExecQuerier, b querier) error {
	query, args := b.Query()
	return q.Exec(ctx, query, args, nil)
}

// insertID runs an insert and returns the generated id.
func insertID(ctx context.Context, q dialect.ExecQuerier, b *sql.InsertBuilder) (int64, error) {
	query, args := b.Returning("id").Query()
	rows := &sql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, errors.New("insert returned no id")
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// record is one scanned row keyed by column name. Values are nil, int64,
// string or bool.
type record map[string]any

// queryRecords reads every row selected by sel. Rows are drained before
// returning so the connection is free for the next statement.
func queryRecords(ctx context.Context, q dialect.ExecQuerier, sel *sql.Selector, cols []*schema.Column) ([]record, error) {
	query, args := sel.Query()
	rows := &sql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record
	for rows.Next() {
		dest := make([]any, len(cols))
		for i, c := range cols {
			switch c.Type {
			case field.TypeBool:
				dest[i] = new(sql.NullBool)
			case field.TypeInt, field.TypeInt64:
				dest[i] = new(sql.NullInt64)
			default:
				dest[i] = new(sql.NullString)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r := make(record, len(cols))
		for i, c := range cols {
			switch v := dest[i].(type) {
			case *sql.NullBool:
				if v.Valid {
					r[c.Name] = v.Bool
				}
			case *sql.NullInt64:
				if v.Valid {
					r[c.Name] = v.Int64
				}
			case *sql.NullString:
				if v.Valid {
					r[c.Name] = v.String
				}
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func columnNames(cols []*schema.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func (r record) id(col string) (int64, bool) {
	v, ok := r[col].(int64)
	return v, ok
}

func (r record) str(col string) *string {
	v, ok := r[col].(string)
	if !ok {
		return nil
	}
	return &v
}

func (r record) text(col string) string {
	v, _ := r[col].(string)
	return v
}

func (r record) flag(col string) bool {
	v, _ := r[col].(bool)
	return v
}

// values collects the column/value pairs of an insert.
type values struct {
	cols []string
	vals []any
}

func (v *values) add(col string, val any) *values {
	v.cols = append(v.cols, col)
	v.vals = append(v.vals, val)
	return v
}

func (v *values) insert(b *sql.DialectBuilder, table string) *sql.InsertBuilder {
	return b.Insert(table).Columns(v.cols...).Values(v.vals...)
}

// nullable maps an absent form to NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func rowError(table string, err error) error {
	return fmt.Errorf("%s: %w", table, err)
}
