package mysqlcat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hugr-lab/mysqlcat-go/catalog"
	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/pushdown"
	"github.com/hugr-lab/mysqlcat-go/scan"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// Catalog is an attached MySQL database. It owns the connection, the
// type mapping settings, and the lazily loaded schema metadata.
// All methods are goroutine-safe.
type Catalog struct {
	client    *mysql.Client
	session   mysql.Session
	params    mysql.ConnectionParameters
	settings  *typemap.SessionSettings
	schemas   *catalog.SchemaSet
	cache     *catalog.ObjectCache
	logger    *slog.Logger
	batchSize int
}

// Attach connects to the database described by the connection string
// and returns a catalog over it. cfg may be nil for defaults.
func Attach(ctx context.Context, dsn string, cfg *Config) (*Catalog, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	env := cfg.Env
	if env == nil {
		env = mysql.OSEnv
	}
	client, err := mysql.Dial(ctx, dsn, env)
	if err != nil {
		return nil, err
	}
	cat, err := newCatalog(client, client.Params(), cfg)
	if err != nil {
		client.Close()
		return nil, err
	}
	cat.client = client
	cat.logger.InfoContext(ctx, "attached to MySQL database",
		"host", cat.params.Host,
		"database", cat.params.Database,
	)
	return cat, nil
}

// NewWithSession builds a catalog over an already established session.
// The caller keeps ownership of the session's lifetime.
func NewWithSession(session mysql.Session, params mysql.ConnectionParameters, cfg *Config) (*Catalog, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	return newCatalog(session, params, cfg)
}

func newCatalog(session mysql.Session, params mysql.ConnectionParameters, cfg *Config) (*Catalog, error) {
	cat := &Catalog{
		session:   session,
		params:    params,
		settings:  cfg.settings(),
		logger:    cfg.logger(),
		batchSize: cfg.BatchSize,
	}
	if !cfg.DisableCache {
		cache, err := catalog.NewObjectCache()
		if err != nil {
			return nil, err
		}
		cat.cache = cache
	}
	cat.schemas = catalog.NewSchemaSet(session, cat.settings, cat.cache)
	return cat, nil
}

// Params returns the parsed connection parameters.
func (c *Catalog) Params() mysql.ConnectionParameters { return c.params }

// Settings returns the type mapping settings. Changes take effect on
// the next table load.
func (c *Catalog) Settings() *typemap.SessionSettings { return c.settings }

// Schemas returns all remote schemas sorted by name.
func (c *Catalog) Schemas(ctx context.Context) ([]*catalog.SchemaEntry, error) {
	return c.schemas.Entries(ctx)
}

// ScanSchemas calls fn for every schema in name order, stopping early
// when fn returns false.
func (c *Catalog) ScanSchemas(ctx context.Context, fn func(*catalog.SchemaEntry) bool) error {
	return c.schemas.Scan(ctx, fn)
}

// Schema returns the named schema. An empty name selects the default
// schema from the connection string; without one the lookup fails with
// ErrNoDatabase. A failed lookup suggests the closest existing name.
func (c *Catalog) Schema(ctx context.Context, name string) (*catalog.SchemaEntry, error) {
	if name == "" {
		if c.params.Database == "" {
			return nil, fmt.Errorf("%w: connection string has no db entry and no schema was named", ErrNoDatabase)
		}
		name = c.params.Database
	}
	entry, found, err := c.schemas.GetEntry(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, c.notFoundErr(ctx, ErrSchemaNotFound, "schema", name, c.schemas.Names)
	}
	return entry, nil
}

// Table returns the named table of a schema. schemaName may be empty to
// use the default schema.
func (c *Catalog) Table(ctx context.Context, schemaName, tableName string) (*catalog.TableEntry, error) {
	schema, err := c.Schema(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	entry, found, err := schema.Tables().GetEntry(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, c.notFoundErr(ctx, ErrTableNotFound, "table", tableName, schema.Tables().Names)
	}
	return entry, nil
}

func (c *Catalog) notFoundErr(ctx context.Context, sentinel error, kind, name string, names func(context.Context) ([]string, error)) error {
	candidates, err := names(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s %q", sentinel, kind, name)
	}
	if hint := catalog.Suggest(name, candidates); hint != "" {
		return fmt.Errorf("%w: %s %q, did you mean %q", sentinel, kind, name, hint)
	}
	return fmt.Errorf("%w: %s %q", sentinel, kind, name)
}

// CreateSchema creates a schema on the remote database. With orReplace
// an existing schema of the same name is dropped first.
func (c *Catalog) CreateSchema(ctx context.Context, name string, orReplace bool) (*catalog.SchemaEntry, error) {
	if orReplace {
		err := c.schemas.DropEntry(ctx, catalog.DropInfo{
			Type:           catalog.ObjectSchema,
			Name:           name,
			IgnoreNotFound: true,
		})
		if err != nil {
			return nil, err
		}
	}
	entry, err := c.schemas.CreateSchema(ctx, name)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "created schema", "schema", name, "replaced", orReplace)
	return entry, nil
}

// DropSchema drops a schema on the remote database and removes it from
// the cache.
func (c *Catalog) DropSchema(ctx context.Context, name string, ignoreNotFound bool) error {
	err := c.schemas.DropEntry(ctx, catalog.DropInfo{
		Type:           catalog.ObjectSchema,
		Name:           name,
		IgnoreNotFound: ignoreNotFound,
	})
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "dropped schema", "schema", name)
	return nil
}

// DropTable drops a table in a schema. schemaName may be empty to use
// the default schema.
func (c *Catalog) DropTable(ctx context.Context, schemaName, tableName string, ignoreNotFound bool) error {
	schema, err := c.Schema(ctx, schemaName)
	if err != nil {
		return err
	}
	return schema.Tables().DropEntry(ctx, catalog.DropInfo{
		Type:           catalog.ObjectTable,
		Name:           tableName,
		IgnoreNotFound: ignoreNotFound,
	})
}

// databaseSizeQuery aggregates on-disk size of one schema; SUM is NULL
// for schemas without tables.
const databaseSizeQuery = "SELECT COALESCE(SUM(data_length + index_length), 0) FROM information_schema.tables WHERE table_schema = %s"

// DatabaseSize returns the on-disk size of a schema in bytes.
// schemaName may be empty to use the default schema.
func (c *Catalog) DatabaseSize(ctx context.Context, schemaName string) (int64, error) {
	schema, err := c.Schema(ctx, schemaName)
	if err != nil {
		return 0, err
	}
	rows, err := c.session.Query(ctx, fmt.Sprintf(databaseSizeQuery, mysql.QuoteLiteral(schema.Name())))
	if err != nil {
		return 0, fmt.Errorf("failed to query database size: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("database size query returned no rows")
	}
	var size int64
	if err := rows.Scan(&size); err != nil {
		return 0, fmt.Errorf("failed to scan database size: %w", err)
	}
	return size, nil
}

// Scan starts reading a table. columnIDs lists the projected column
// positions (scan.RowIDColumn for the rowid pseudo column); a nil
// filter set scans everything. Translated filters are removed from the
// set, the rest must be evaluated by the caller on the returned
// records.
func (c *Catalog) Scan(ctx context.Context, table *catalog.TableEntry, columnIDs []int, filters *pushdown.FilterSet) (*scan.Reader, error) {
	where := pushdown.Translate(filters, columnIDs, table.ColumnNames())
	query := scan.BuildSelect(table, columnIDs, where)
	c.logger.DebugContext(ctx, "scanning table",
		"schema", table.Schema(),
		"table", table.Name(),
		"query", query,
	)
	rows, err := c.session.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to scan table %q: %w", table.Name(), err)
	}
	reader, err := scan.NewReader(table, columnIDs, rows, c.batchSize)
	if err != nil {
		rows.Close()
		return nil, err
	}
	return reader, nil
}

// CacheSchemas snapshots the loaded schema list so later generations
// can skip the remote round trip.
func (c *Catalog) CacheSchemas(ctx context.Context) error {
	return c.schemas.Snapshot(ctx)
}

// ClearCache discards the schema snapshot and the loaded metadata. The
// next lookup reloads from the remote database.
func (c *Catalog) ClearCache() {
	c.schemas.InvalidateSnapshot()
	c.schemas.ClearEntries()
}

// Begin opens a transaction on the attached connection. Catalog
// operations run through it when the returned context is used.
func (c *Catalog) Begin(ctx context.Context) (*mysql.Tx, context.Context, error) {
	if c.client == nil {
		return nil, nil, fmt.Errorf("catalog has no owned connection")
	}
	tx, err := c.client.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tx, mysql.WithSession(ctx, tx), nil
}

// Close releases the connection and the cache.
func (c *Catalog) Close() error {
	var err error
	if c.cache != nil {
		err = c.cache.Close()
	}
	if c.client != nil {
		if cerr := c.client.Close(); cerr != nil {
			err = cerr
		}
	}
	return err
}
