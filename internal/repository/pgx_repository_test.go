package repository

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"promowatch/internal/db"
)

// Needs Docker; opt in with PROMOWATCH_PG_TESTS=1.
func TestPgxRepository(t *testing.T) {
	if testing.Short() || os.Getenv("PROMOWATCH_PG_TESTS") == "" {
		t.Skip("set PROMOWATCH_PG_TESTS=1 to run against a Postgres container")
	}

	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "promowatch",
				"POSTGRES_PASSWORD": "promowatch",
				"POSTGRES_DB":       "promowatch",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer pg.Terminate(context.Background())

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)
	url := fmt.Sprintf("postgres://promowatch:promowatch@%s:%s/promowatch?sslmode=disable", host, port.Port())

	pool, err := db.NewPool(ctx, url)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.EnsureSchemaPool(ctx, pool))

	writer := &PgxRepository{DB: pool}
	p := sampleProduct(1150870956, "2024-05-01T18:30:00")
	id, err := writer.Save(ctx, p)
	require.NoError(t, err)

	conn, dialect, err := db.Open(url)
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, db.Postgres, dialect)

	reader := &SQLRepository{DB: conn, Dialect: dialect}
	history, err := reader.History(ctx, p.ProductID, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, id, history[0].ID)
	require.Equal(t, p, history[0].Product)
}
