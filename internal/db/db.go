package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax and error classification.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB is an open, migrated database handle plus its dialect.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// Conn returns a DBTX over the pooled connection, rebinding placeholders
// for the dialect.
func (d *DB) Conn() DBTX {
	return Bind(d.SQL, d.Dialect)
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

// Open opens the store selected by driver ("sqlite" or "postgres").
func Open(driver, path, dsn string) (*DB, error) {
	switch Dialect(driver) {
	case DialectSQLite, "":
		return OpenSQLite(path)
	case DialectPostgres:
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("unknown db driver %q (want sqlite or postgres)", driver)
	}
}

// OpenSQLite opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	d := &DB{SQL: sqlDB, Dialect: DialectSQLite}
	if err := Migrate(d); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenPostgres connects with lib/pq, verifies the connection and migrates.
func OpenPostgres(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver needs a connection string")
	}
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres connection string: %w", err)
	}

	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	d := &DB{SQL: sqlDB, Dialect: DialectPostgres}
	if err := Migrate(d); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}
