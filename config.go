package mysqlcat

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// Config contains optional knobs for an attached catalog.
type Config struct {
	// Env resolves environment fallbacks for unset connection keys.
	// OPTIONAL: Uses the process environment if nil.
	Env mysql.EnvLookup

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// DisableCache turns off schema snapshotting, so every catalog
	// generation loads from the remote database.
	// OPTIONAL: Snapshotting is on by default.
	DisableCache bool

	// BatchSize is the number of rows per produced Arrow record.
	// OPTIONAL: If 0, a default batch size is used.
	BatchSize int

	// Settings enables type mapping settings. Both boolean mappings
	// default to off; TINYINT(1) and BIT(1) columns then keep their
	// structural types.
	// OPTIONAL.
	Settings map[string]bool
}

// Standard errors returned by the mysqlcat package.
var (
	// ErrNoDatabase indicates a default-schema lookup without a db in
	// the connection string.
	ErrNoDatabase = errors.New("no database provided")

	// ErrSchemaNotFound indicates a schema lookup failed.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrTableNotFound indicates a table lookup failed.
	ErrTableNotFound = errors.New("table not found")
)

// logger builds the effective logger from config.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *c.LogLevel}))
	}
	return slog.Default()
}

// settings builds the effective type mapping settings from config.
func (c *Config) settings() *typemap.SessionSettings {
	s := &typemap.SessionSettings{}
	for name, value := range c.Settings {
		s.Set(name, value)
	}
	return s
}
