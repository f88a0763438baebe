package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

const defaultFile = "liverpool-bose-qc-ultra.db"

// IsPostgres reports whether dsn points at a Postgres server.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func isLibSQL(dsn string) bool {
	return strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") ||
		strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "http://")
}

// Open picks the database/sql driver from the shape of dsn: Postgres URLs go
// through lib/pq, libSQL URLs through the libsql client, anything else is a
// local SQLite file.
func Open(dsn string) (*sql.DB, Dialect, error) {
	switch {
	case IsPostgres(dsn):
		conn, err := sql.Open("postgres", dsn)
		return conn, Postgres, err
	case isLibSQL(dsn):
		conn, err := sql.Open("libsql", dsn)
		return conn, SQLite, err
	default:
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, SQLite, err
		}
		// one connection, so :memory: databases and the single writer agree
		conn.SetMaxOpenConns(1)
		return conn, SQLite, nil
	}
}

// NewPool opens a pgx pool and checks the server is reachable.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ResolvePath turns an empty DSN into the default SQLite file under
// ~/.local/share/promowatch and creates the parent directory of local files.
func ResolvePath(dsn string) (string, error) {
	if IsPostgres(dsn) || isLibSQL(dsn) || dsn == ":memory:" {
		return dsn, nil
	}
	if dsn == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine home directory: %w", err)
		}
		dsn = filepath.Join(home, ".local", "share", "promowatch", defaultFile)
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return dsn, nil
}

// Rebind rewrites ? placeholders to $1, $2, ... for Postgres.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
