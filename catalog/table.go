package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// Column describes one table column in both remote and host terms.
type Column struct {
	Name       string
	Type       typemap.LogicalType
	Annotation typemap.Annotation
	Remote     typemap.RemoteType
}

// TableEntry is the cached description of one remote table.
type TableEntry struct {
	schema  string
	name    string
	columns []Column
}

// NewTableEntry creates a table entry with the given columns.
func NewTableEntry(schema, name string, columns []Column) *TableEntry {
	return &TableEntry{schema: schema, name: name, columns: columns}
}

// Name implements Entry.
func (e *TableEntry) Name() string { return e.name }

// Schema returns the name of the schema containing the table.
func (e *TableEntry) Schema() string { return e.schema }

// Columns returns the table columns in ordinal order.
func (e *TableEntry) Columns() []Column { return e.columns }

// ColumnNames returns the column names in ordinal order.
func (e *TableEntry) ColumnNames() []string {
	names := make([]string, len(e.columns))
	for i, c := range e.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (e *TableEntry) Column(name string) (Column, bool) {
	for _, c := range e.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// tableColumnsQuery lists every column of a schema in one round trip;
// rows arrive grouped by table in ordinal order.
const tableColumnsQuery = `SELECT table_name, column_name, data_type, column_type, numeric_precision, numeric_scale
FROM information_schema.columns
WHERE table_schema = %s
ORDER BY table_name, ordinal_position`

// NewTableSet creates the lazily loaded table collection of one schema.
// Column types are converted with the given session settings.
func NewTableSet(session mysql.Session, settings typemap.Settings, schema string) *Set[*TableEntry] {
	return NewSet(session, func(ctx context.Context) ([]*TableEntry, error) {
		return loadTables(ctx, session, settings, schema)
	})
}

func loadTables(ctx context.Context, session mysql.Session, settings typemap.Settings, schema string) ([]*TableEntry, error) {
	query := fmt.Sprintf(tableColumnsQuery, mysql.QuoteLiteral(schema))
	rows, err := session.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of schema %q: %w", schema, err)
	}
	defer rows.Close()

	var (
		entries []*TableEntry
		current string
		columns []Column
	)
	flush := func() {
		if current != "" {
			entries = append(entries, NewTableEntry(schema, current, columns))
		}
	}
	for rows.Next() {
		var (
			tableName, columnName, dataType, columnType string
			precision, scale                            sql.NullInt64
		)
		if err := rows.Scan(&tableName, &columnName, &dataType, &columnType, &precision, &scale); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		if tableName != current {
			flush()
			current = tableName
			columns = nil
		}
		remote := typemap.RemoteType{
			TypeName:   dataType,
			ColumnType: columnType,
			Precision:  precision.Int64,
			Scale:      scale.Int64,
		}
		hostType, annotation := typemap.ToHostType(settings, remote)
		columns = append(columns, Column{
			Name:       columnName,
			Type:       hostType,
			Annotation: annotation,
			Remote:     remote,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read column rows: %w", err)
	}
	flush()
	return entries, nil
}
