package pushdown

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// compareOps maps pushable comparison operators to their MySQL
// spelling. Operators absent from this table keep their filter on the
// host side.
var compareOps = map[CompareType]string{
	CompareEqual:              "=",
	CompareNotEqual:           "!=",
	CompareLessThan:           "<",
	CompareGreaterThan:        ">",
	CompareLessThanOrEqual:    "<=",
	CompareGreaterThanOrEqual: ">=",
}

// Translate renders every fully translatable top-level filter as a
// MySQL predicate and removes it from the set, so the caller can hand
// the remainder back to the host for residual evaluation. columnIDs
// maps filter keys to positions in names; a nil columnIDs means the
// keys already index names directly. The returned fragments are joined
// with AND; the result is "" when nothing could be pushed.
func Translate(set *FilterSet, columnIDs []int, names []string) string {
	if set.Empty() {
		return ""
	}
	var fragments []string
	for _, idx := range set.columns() {
		pos := idx
		if columnIDs != nil {
			pos = columnIDs[idx]
		}
		if pos < 0 || pos >= len(names) {
			continue
		}
		column := mysql.QuoteIdentifier(names[pos])
		sql, ok := translateFilter(column, set.Filters[idx])
		if !ok {
			continue
		}
		fragments = append(fragments, sql)
		delete(set.Filters, idx)
	}
	return strings.Join(fragments, " AND ")
}

// SelectPushable partitions the set without rendering SQL: filters that
// would translate completely go into pushed, the rest into residual.
// The input set is not modified.
func SelectPushable(set *FilterSet, names []string) (pushed, residual *FilterSet) {
	pushed, residual = NewFilterSet(), NewFilterSet()
	if set.Empty() {
		return pushed, residual
	}
	for idx, f := range set.Filters {
		if _, ok := translateFilter(mysql.QuoteIdentifier(names[idx]), f); ok {
			pushed.Filters[idx] = f
		} else {
			residual.Filters[idx] = f
		}
	}
	return pushed, residual
}

// translateFilter renders a single filter tree against one column.
// A filter translates only as a whole: if any node is untranslatable
// the entire tree stays residual, since dropping part of a disjunction
// would change results.
func translateFilter(column string, f Filter) (string, bool) {
	switch f := f.(type) {
	case *ConstantFilter:
		op, ok := compareOps[f.Op]
		if !ok {
			return "", false
		}
		literal, ok := formatValue(f.Value)
		if !ok {
			return "", false
		}
		return column + " " + op + " " + literal, true
	case *ConjunctionFilter:
		if len(f.Children) == 0 {
			return "", false
		}
		parts := make([]string, 0, len(f.Children))
		for _, child := range f.Children {
			sql, ok := translateFilter(column, child)
			if !ok {
				return "", false
			}
			parts = append(parts, sql)
		}
		return "(" + strings.Join(parts, " "+string(f.Op)+" ") + ")", true
	default:
		return "", false
	}
}

// formatValue renders a constant as a MySQL literal.
func formatValue(v typemap.Value) (string, bool) {
	if v.IsNull {
		return "NULL", true
	}
	switch v.Type.ID {
	case typemap.TypeIDBoolean:
		b, ok := v.Data.(bool)
		if !ok {
			return "", false
		}
		if b {
			return "TRUE", true
		}
		return "FALSE", true
	case typemap.TypeIDTinyInt, typemap.TypeIDSmallInt, typemap.TypeIDInteger, typemap.TypeIDBigInt:
		switch d := v.Data.(type) {
		case int64:
			return strconv.FormatInt(d, 10), true
		case int:
			return strconv.Itoa(d), true
		}
		return "", false
	case typemap.TypeIDUTinyInt, typemap.TypeIDUSmallInt, typemap.TypeIDUInteger, typemap.TypeIDUBigInt:
		d, ok := v.Data.(uint64)
		if !ok {
			return "", false
		}
		return strconv.FormatUint(d, 10), true
	case typemap.TypeIDFloat, typemap.TypeIDDouble:
		d, ok := v.Data.(float64)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(d, 'g', -1, 64), true
	case typemap.TypeIDDecimal:
		switch d := v.Data.(type) {
		case string:
			return d, true
		case float64:
			return strconv.FormatFloat(d, 'f', -1, 64), true
		}
		return "", false
	case typemap.TypeIDVarchar:
		s, ok := v.Data.(string)
		if !ok {
			return "", false
		}
		return mysql.QuoteLiteral(s), true
	case typemap.TypeIDBlob:
		b, ok := v.Data.([]byte)
		if !ok {
			return "", false
		}
		return "x'" + hex.EncodeToString(b) + "'", true
	case typemap.TypeIDDate:
		t, ok := v.Data.(time.Time)
		if !ok {
			return "", false
		}
		return mysql.QuoteLiteral(t.Format("2006-01-02")), true
	case typemap.TypeIDTimestamp, typemap.TypeIDTimestampTZ:
		t, ok := v.Data.(time.Time)
		if !ok {
			return "", false
		}
		if t.Nanosecond() != 0 {
			return mysql.QuoteLiteral(t.Format("2006-01-02 15:04:05.000000")), true
		}
		return mysql.QuoteLiteral(t.Format("2006-01-02 15:04:05")), true
	default:
		return "", false
	}
}
