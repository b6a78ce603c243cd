// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/logger"
)

// New returns a fresh database with the directory schema. It is closed when
// the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()
	ctx := context.Background()

	cfg := config.DatabaseConfig{
		Driver:         "sqlite",
		URL:            fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		ConnectRetries: 1,
	}
	db, err := database.Open(ctx, cfg, logger.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateSchema(ctx, db))
	return db
}
