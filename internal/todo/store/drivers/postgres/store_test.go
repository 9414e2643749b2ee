package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/postgres"
	"github.com/aussiebroadwan/todo/internal/todo/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres container and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "todo",
			"POSTGRES_PASSWORD": "todo",
			"POSTGRES_DB":       "todo",
		},
		// The server restarts once after initdb, so wait for the second ready line.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://todo:todo@%s:%s/todo?sslmode=disable", host, port.Port())
}

func TestStoreConformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	dsn := startPostgres(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()

		st, err := postgres.NewStore(ctx, dsn, postgres.Options{MaxOpenConns: 4})
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })

		require.NoError(t, st.ApplyMigrations())
		require.NoError(t, st.Reset(ctx))
		return st
	})
}
