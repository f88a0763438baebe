package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b, c) VALUES (?, ?, ?)"
	require.Equal(t, q, Rebind(SQLite, q))
	require.Equal(t, "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)", Rebind(Postgres, q))
}

func TestOpenDialect(t *testing.T) {
	conn, d, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, SQLite, d)

	require.True(t, IsPostgres("postgres://u:p@localhost/db"))
	require.False(t, IsPostgres("/var/lib/promowatch.db"))
}

func TestResolvePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "deals.db")
	got, err := ResolvePath(target)
	require.NoError(t, err)
	require.Equal(t, target, got)
	require.DirExists(t, filepath.Dir(target))

	t.Setenv("HOME", t.TempDir())
	got, err = ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, defaultFile, filepath.Base(got))
	require.Equal(t, "promowatch", filepath.Base(filepath.Dir(got)))

	pg := "postgres://localhost/promowatch"
	got, err = ResolvePath(pg)
	require.NoError(t, err)
	require.Equal(t, pg, got)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	conn, d, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, conn, d))
	require.NoError(t, EnsureSchema(ctx, conn, d))

	var n int
	err = conn.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name IN ('idx_products_product_id', 'idx_promotions_products_id')`,
	).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
