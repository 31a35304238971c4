// Package catalog caches the remote MySQL schema and table metadata
// exposed to the host engine.
//
// The package follows an interface-based design: every cached object
// implements Entry, and Set holds one loaded generation of entries.
// All exported types are goroutine-safe.
package catalog

import (
	"strings"

	"github.com/hugr-lab/mysqlcat-go/mysql"
)

// ObjectType identifies the kind of catalog object a DDL statement
// targets.
type ObjectType string

const (
	ObjectTable  ObjectType = "TABLE"
	ObjectView   ObjectType = "VIEW"
	ObjectIndex  ObjectType = "INDEX"
	ObjectSchema ObjectType = "SCHEMA"
)

// Entry is a named catalog object held by a Set.
type Entry interface {
	// Name returns the canonical object name as reported by MySQL.
	// MUST return non-empty string.
	Name() string
}

// DropInfo describes a drop request for a catalog object.
type DropInfo struct {
	Type ObjectType
	Name string

	// IgnoreNotFound emits IF EXISTS so a missing remote object is
	// not an error.
	IgnoreNotFound bool

	// Cascade drops dependent objects as well. Ignored for schemas,
	// where MySQL drops contained tables unconditionally.
	Cascade bool
}

// SQL renders the drop request as a MySQL DDL statement.
func (d DropInfo) SQL() string {
	var b strings.Builder
	b.WriteString("DROP ")
	b.WriteString(string(d.Type))
	if d.IgnoreNotFound {
		b.WriteString(" IF EXISTS")
	}
	b.WriteString(" ")
	b.WriteString(mysql.QuoteIdentifier(d.Name))
	if d.Cascade && d.Type != ObjectSchema {
		b.WriteString(" CASCADE")
	}
	return b.String()
}
