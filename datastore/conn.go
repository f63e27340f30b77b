package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	// Drivers selectable through Dialect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names a database/sql driver and the placeholder style it expects.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// ParseDialect maps a driver name (case-insensitive) onto a Dialect.
func ParseDialect(driver string) (Dialect, bool) {
	d := Dialect(strings.ToLower(strings.TrimSpace(driver)))
	switch d {
	case DialectMySQL, DialectPostgres, DialectSQLite:
		return d, true
	case "sqlite":
		return DialectSQLite, true
	case "postgresql":
		return DialectPostgres, true
	default:
		return "", false
	}
}

// PoolConfig bounds the connection pool owned by *sql.DB.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// Conn is the single query surface every repository goes through. Queries are
// written with '?' placeholders and rebound for the dialect before execution.
type Conn struct {
	db      *sql.DB
	dialect Dialect
}

func NewConn(db *sql.DB, dialect Dialect) *Conn {
	return &Conn{db: db, dialect: dialect}
}

// Open opens and pings a pool for the dialect. The caller owns Close.
// SQLite pools always enforce foreign keys unless the DSN sets the
// pragma itself.
func Open(ctx context.Context, dialect Dialect, dsn string, pool PoolConfig) (*Conn, error) {
	if dialect == DialectSQLite {
		dsn = sqliteForeignKeys(dsn)
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingCtx := ctx
	if pool.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, pool.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection successful", "driver", string(dialect))
	return NewConn(db, dialect), nil
}

// sqliteForeignKeys adds go-sqlite3's _foreign_keys=on parameter, which the
// driver applies to every connection it opens.
func sqliteForeignKeys(dsn string) string {
	_, params, _ := strings.Cut(dsn, "?")
	for _, kv := range strings.Split(params, "&") {
		key, _, _ := strings.Cut(kv, "=")
		if key == "_foreign_keys" || key == "_fk" {
			return dsn
		}
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func (c *Conn) Dialect() Dialect { return c.dialect }

func (c *Conn) Close() error { return c.db.Close() }

func (c *Conn) PingContext(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *Conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.rebind(query), args...)
}

func (c *Conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.rebind(query), args...)
}

func (c *Conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.rebind(query), args...)
}

// rebind rewrites '?' placeholders as $1, $2, ... for postgres. Queries in
// this package never contain a literal '?'.
func (c *Conn) rebind(query string) string {
	if c.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// setClause builds "a = ?, b = ?" for the given columns. Column names are
// compile-time constants from the repositories, never request input.
func setClause(columns []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " = ?"
	}
	return strings.Join(parts, ", ")
}
