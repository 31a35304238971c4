// Package scan turns cached table metadata into remote SELECT
// statements and decodes the text-protocol results into Arrow records.
package scan

import (
	"strings"

	"github.com/hugr-lab/mysqlcat-go/catalog"
	"github.com/hugr-lab/mysqlcat-go/mysql"
)

// RowIDColumn marks a projected pseudo column with no remote
// counterpart. It is emitted as NULL so result positions stay aligned
// with the projection.
const RowIDColumn = -1

// BuildSelect renders the remote SELECT for a table scan. columnIDs
// lists the projected column positions; an empty projection still
// selects a NULL constant so row counts survive. where is the
// translated filter fragment and may be empty.
func BuildSelect(table *catalog.TableEntry, columnIDs []int, where string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(columnIDs) == 0 {
		b.WriteString("NULL")
	}
	for i, id := range columnIDs {
		if i > 0 {
			b.WriteString(", ")
		}
		if id == RowIDColumn {
			b.WriteString("NULL")
			continue
		}
		b.WriteString(mysql.QuoteIdentifier(table.Columns()[id].Name))
	}
	b.WriteString(" FROM ")
	b.WriteString(mysql.QuoteIdentifier(table.Schema()))
	b.WriteString(".")
	b.WriteString(mysql.QuoteIdentifier(table.Name()))
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	return b.String()
}
