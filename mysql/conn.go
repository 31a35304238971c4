package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// Rows is the subset of *sql.Rows the catalog layer iterates.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Session executes SQL text against the remote engine. Both a pooled
// client and an open transaction satisfy it. Failures propagate as
// transport errors; no retry happens at this layer.
type Session interface {
	// Query runs a statement that produces rows.
	Query(ctx context.Context, query string) (Rows, error)

	// Exec runs a statement for its side effect.
	Exec(ctx context.Context, query string) error
}

// Client is a pooled connection to one MySQL server.
type Client struct {
	db     *sql.DB
	params ConnectionParameters
}

// openFunc opens and pings a database for the given driver DSN.
// Replaceable in tests.
type openFunc func(ctx context.Context, dsn string) (*sql.DB, error)

func openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func driverDSN(params ConnectionParameters, host string) string {
	cfg := mysqldrv.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.DBName = params.Database
	if params.UnixSocket != "" {
		cfg.Net = "unix"
		cfg.Addr = params.UnixSocket
	} else {
		cfg.Net = "tcp"
		addr := host
		if addr == "" {
			addr = "localhost"
		}
		if params.Port != 0 {
			addr += ":" + strconv.FormatUint(uint64(params.Port), 10)
		}
		cfg.Addr = addr
	}
	return cfg.FormatDSN()
}

// Dial parses the DSN and connects. A failed connect to an empty or
// "localhost" host retries once against the loopback address before
// failing; all other hosts fail on the first unsuccessful attempt.
func Dial(ctx context.Context, dsn string, env EnvLookup) (*Client, error) {
	params, err := ParseDSN(dsn, env)
	if err != nil {
		return nil, err
	}
	return dial(ctx, dsn, params, openAndPing)
}

func dial(ctx context.Context, dsn string, params ConnectionParameters, open openFunc) (*Client, error) {
	db, err := open(ctx, driverDSN(params, params.Host))
	if err != nil {
		if params.UnixSocket == "" && (params.Host == "" || params.Host == "localhost") {
			db, retryErr := open(ctx, driverDSN(params, "127.0.0.1"))
			if retryErr == nil {
				return &Client{db: db, params: params}, nil
			}
		}
		return nil, fmt.Errorf("failed to connect to MySQL database with parameters %q: %w", dsn, err)
	}
	return &Client{db: db, params: params}, nil
}

// Params returns the parameters the client was dialed with.
func (c *Client) Params() ConnectionParameters {
	return c.params
}

// DB exposes the underlying pool for result-set consumers that need
// column metadata.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Query implements Session.
func (c *Client) Query(ctx context.Context, query string) (Rows, error) {
	return c.db.QueryContext(ctx, query)
}

// Exec implements Session.
func (c *Client) Exec(ctx context.Context, query string) error {
	_, err := c.db.ExecContext(ctx, query)
	return err
}

// Begin opens a transaction-scoped session.
func (c *Client) Begin(ctx context.Context) (*Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// Close releases the pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Tx is a transaction-scoped Session.
type Tx struct {
	tx *sql.Tx
}

// Query implements Session.
func (t *Tx) Query(ctx context.Context, query string) (Rows, error) {
	return t.tx.QueryContext(ctx, query)
}

// Exec implements Session.
func (t *Tx) Exec(ctx context.Context, query string) error {
	_, err := t.tx.ExecContext(ctx, query)
	return err
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
