package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hugr-lab/mysqlcat-go/mysql"
)

// fakeSession serves canned result sets keyed by a query substring and
// records every statement it executes.
type fakeSession struct {
	results map[string][][]any
	queries []string
	execs   []string
	execErr error
}

func (s *fakeSession) Query(ctx context.Context, query string) (mysql.Rows, error) {
	s.queries = append(s.queries, query)
	for key, rows := range s.results {
		if strings.Contains(query, key) {
			return &fakeRows{rows: rows}, nil
		}
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func (s *fakeSession) Exec(ctx context.Context, query string) error {
	s.execs = append(s.execs, query)
	return s.execErr
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan into %d targets, row has %d values", len(dest), len(row))
	}
	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Err() error   { return nil }
func (r *fakeRows) Close() error { return nil }

func assign(dest, v any) error {
	switch d := dest.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("cannot assign %T to *string", v)
		}
		*d = s
	case *int64:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("cannot assign %T to *int64", v)
		}
		*d = n
	case *sql.NullInt64:
		if v == nil {
			*d = sql.NullInt64{}
			return nil
		}
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("cannot assign %T to *sql.NullInt64", v)
		}
		*d = sql.NullInt64{Int64: n, Valid: true}
	default:
		return fmt.Errorf("unsupported scan target %T", dest)
	}
	return nil
}
