package database_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/directory/db"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

// TestPostgresIntegration runs the migrations and the storage layer against a
// real PostgreSQL container.
func TestPostgresIntegration(t *testing.T) {
	if testing.Short() || os.Getenv("FYYUR_INTEGRATION") != "1" {
		t.Skip("Skipping PostgreSQL integration test; set FYYUR_INTEGRATION=1 to run it")
	}

	ctx := context.Background()
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "fyyur",
				"POSTGRES_PASSWORD": "fyyur",
				"POSTGRES_DB":       "fyyur",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://fyyur:fyyur@%s:%s/fyyur?sslmode=disable", host, port.Port())

	cfg := config.DatabaseConfig{Driver: "postgres", URL: dsn, MaxOpenConns: 5, MaxIdleConns: 5, MaxLifetime: time.Minute, ConnectRetries: 5}
	bunDB, err := database.Open(ctx, cfg, logger.New(io.Discard))
	require.NoError(t, err)
	defer bunDB.Close()

	require.NoError(t, database.Prepare(ctx, bunDB, "postgres", ""))
	// a second run finds nothing to do
	require.NoError(t, database.Prepare(ctx, bunDB, "postgres", ""))

	runner := migrations.NewRunner(bunDB, migrations.Options{})
	version, dirty, err := runner.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
	require.NoError(t, runner.Close())
	require.NoError(t, bunDB.PingContext(ctx), "closing the migrator must not close the pool")

	// a migrations path that is a plain file fails once the connection is taken
	notDir := filepath.Join(t.TempDir(), "migrations")
	require.NoError(t, os.WriteFile(notDir, nil, 0o644))
	broken := migrations.NewRunner(bunDB, migrations.Options{Dir: notDir})
	require.Error(t, broken.Initialize())
	assert.Zero(t, bunDB.DB.Stats().InUse, "failed Initialize kept a pool connection")

	store := db.New(bunDB)
	venue := &models.Venue{Name: "The Blue Note", City: "New York", State: "NY", Address: "131 W 3rd St", Genres: []string{"Jazz"}}
	artist := &models.Artist{Name: "Matt Quevedo", City: "New York", State: "NY", Genres: []string{"Jazz"}}
	require.NoError(t, store.CreateVenue(ctx, venue))
	require.NoError(t, store.CreateArtist(ctx, artist))
	require.NoError(t, store.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: time.Now().Add(time.Hour)}))

	assert.ErrorIs(t, store.CreateVenue(ctx, &models.Venue{Name: "The Blue Note", City: "X", State: "NY", Address: "Y"}), db.ErrDuplicateName)

	found, err := store.SearchVenues(ctx, "BLUE")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = store.SearchVenues(ctx, "blue note")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	counts, err := store.UpcomingShowCounts(ctx, db.ByArtist, []int64{artist.ID}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[artist.ID])

	// the same database through pgdriver
	pgDB, err := database.OpenPG(ctx, dsn)
	require.NoError(t, err)
	defer pgDB.Close()
	err = db.New(pgDB).CreateArtist(ctx, &models.Artist{Name: "Matt Quevedo", City: "New York", State: "NY"})
	assert.ErrorIs(t, err, db.ErrDuplicateName)

	require.NoError(t, store.DeleteVenue(ctx, venue.ID))
	shows, err := store.ShowsByArtist(ctx, artist.ID)
	require.NoError(t, err)
	assert.Empty(t, shows)
}
