package catalog

import (
	"context"
	"fmt"

	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// SchemaEntry is the cached description of one remote database schema.
// Its tables load lazily on first access.
type SchemaEntry struct {
	name   string
	tables *Set[*TableEntry]
}

// NewSchemaEntry creates a schema entry with an unloaded table set.
func NewSchemaEntry(session mysql.Session, settings typemap.Settings, name string) *SchemaEntry {
	return &SchemaEntry{
		name:   name,
		tables: NewTableSet(session, settings, name),
	}
}

// Name implements Entry.
func (e *SchemaEntry) Name() string { return e.name }

// Tables returns the schema's table collection.
func (e *SchemaEntry) Tables() *Set[*TableEntry] { return e.tables }

// SchemaSet is the lazily loaded collection of remote schemas. When an
// object cache is attached, a stored snapshot answers the load without
// a remote round trip.
type SchemaSet struct {
	*Set[*SchemaEntry]
	session  mysql.Session
	settings typemap.Settings
	cache    *ObjectCache
}

const schemataQuery = "SELECT schema_name FROM information_schema.schemata"

// NewSchemaSet creates an unloaded schema collection. cache may be nil
// to disable snapshotting.
func NewSchemaSet(session mysql.Session, settings typemap.Settings, cache *ObjectCache) *SchemaSet {
	s := &SchemaSet{
		session:  session,
		settings: settings,
		cache:    cache,
	}
	s.Set = NewSet(session, s.loadSchemas)
	return s
}

func (s *SchemaSet) loadSchemas(ctx context.Context) ([]*SchemaEntry, error) {
	if s.cache != nil {
		var names []string
		if _, found, err := s.cache.Get(SchemaCacheKey, &names); err != nil {
			return nil, fmt.Errorf("failed to read schema snapshot: %w", err)
		} else if found {
			return s.entriesFor(names), nil
		}
	}
	names, err := s.fetchNames(ctx)
	if err != nil {
		return nil, err
	}
	return s.entriesFor(names), nil
}

func (s *SchemaSet) fetchNames(ctx context.Context) ([]string, error) {
	rows, err := s.session.Query(ctx, schemataQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema rows: %w", err)
	}
	return names, nil
}

func (s *SchemaSet) entriesFor(names []string) []*SchemaEntry {
	entries := make([]*SchemaEntry, len(names))
	for i, name := range names {
		entries[i] = NewSchemaEntry(s.session, s.settings, name)
	}
	return entries
}

// CreateSchema creates the schema on the remote database and records
// it in the cache. The DDL runs first, so a remote failure leaves the
// cache unchanged.
func (s *SchemaSet) CreateSchema(ctx context.Context, name string) (*SchemaEntry, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	ddl := "CREATE SCHEMA " + mysql.QuoteIdentifier(name)
	if err := s.sessionFor(ctx).Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create schema %q: %w", name, err)
	}
	entry := NewSchemaEntry(s.session, s.settings, name)
	if err := s.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Snapshot stores the current schema name list in the object cache so
// later catalog generations can load without a remote round trip.
func (s *SchemaSet) Snapshot(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	names, err := s.Names(ctx)
	if err != nil {
		return err
	}
	return s.cache.Put(SchemaCacheKey, names)
}

// InvalidateSnapshot drops the stored schema snapshot, if any.
func (s *SchemaSet) InvalidateSnapshot() {
	if s.cache != nil {
		s.cache.Delete(SchemaCacheKey)
	}
}
