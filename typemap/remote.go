package typemap

import (
	"fmt"
	"strings"
)

// RemoteType describes a MySQL column type as reported by the server.
// TypeName is the bare type keyword ("tinyint", "decimal"); ColumnType is
// the full native spelling including display width and the unsigned
// marker ("tinyint(1)", "bigint unsigned"). Precision and Scale are only
// meaningful for decimal types.
type RemoteType struct {
	TypeName   string
	ColumnType string
	Precision  int64
	Scale      int64
}

// ColumnMeta is the subset of database/sql.ColumnType consumed when
// describing a result-set field. *sql.ColumnType satisfies it.
type ColumnMeta interface {
	DatabaseTypeName() string
	DecimalSize() (precision, scale int64, ok bool)
	Length() (length int64, ok bool)
}

// FromColumnMeta builds a RemoteType from a result-set field description.
// The driver reports type names upper-cased and prefixes unsigned numeric
// fields with "UNSIGNED "; both are normalized into the ColumnType
// spelling the forward mapper inspects.
func FromColumnMeta(meta ColumnMeta) RemoteType {
	name := strings.ToLower(meta.DatabaseTypeName())
	unsigned := false
	if rest, ok := strings.CutPrefix(name, "unsigned "); ok {
		unsigned = true
		name = rest
	}

	t := RemoteType{TypeName: name, ColumnType: name}
	if prec, scale, ok := meta.DecimalSize(); ok {
		t.Precision = prec
		t.Scale = scale
	}
	if length, ok := meta.Length(); ok && length > 0 {
		t.ColumnType += fmt.Sprintf("(%d)", length)
	}
	if unsigned {
		t.ColumnType += " unsigned"
	}
	return t
}

// Unsigned reports whether the full column spelling carries the unsigned
// marker. Absence of the marker means signed.
func (t RemoteType) Unsigned() bool {
	return strings.Contains(t.ColumnType, "unsigned")
}
