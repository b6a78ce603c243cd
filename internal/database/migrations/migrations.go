package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/uptrace/bun"
)

//go:embed sql/*.sql
var embedded embed.FS

type Options struct {
	// Dir overrides the embedded migrations with a directory on disk.
	Dir string
}

// Runner applies the PostgreSQL schema migrations.
type Runner struct {
	bunDB    *bun.DB
	options  Options
	migrator *migrate.Migrate
}

func NewRunner(bunDB *bun.DB, opts Options) *Runner {
	return &Runner{
		bunDB:   bunDB,
		options: opts,
	}
}

func (r *Runner) Initialize() error {
	if r.options.Dir != "" {
		if _, err := os.Stat(r.options.Dir); os.IsNotExist(err) {
			return fmt.Errorf("migrations directory does not exist: %s", r.options.Dir)
		}
	}

	// a dedicated connection, so closing the migrator leaves the pool open
	conn, err := r.bunDB.DB.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get migration connection: %w", err)
	}
	driver, err := postgres.WithConnection(context.Background(), conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create postgres migration driver: %w", err)
	}

	var migrator *migrate.Migrate
	if r.options.Dir != "" {
		migrator, err = migrate.NewWithDatabaseInstance("file://"+r.options.Dir, "postgres", driver)
	} else {
		source, srcErr := iofs.New(embedded, "sql")
		if srcErr != nil {
			driver.Close()
			return fmt.Errorf("failed to open embedded migrations: %w", srcErr)
		}
		migrator, err = migrate.NewWithInstance("iofs", source, "postgres", driver)
	}
	if err != nil {
		// releases the dedicated connection
		driver.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	r.migrator = migrator
	return nil
}

// Up runs all pending migrations, first clearing a dirty flag left by a
// failed run.
func (r *Runner) Up() error {
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return err
		}
	}

	version, dirty, err := r.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		if err := r.migrator.Force(int(version)); err != nil {
			return fmt.Errorf("failed to fix dirty migration: %w", err)
		}
	}

	if err := r.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

func (r *Runner) Down() error {
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return err
		}
	}

	if err := r.migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the applied schema version; 0 when nothing ran yet.
func (r *Runner) Version() (uint, bool, error) {
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return 0, false, err
		}
	}
	version, dirty, err := r.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (r *Runner) Close() error {
	if r.migrator != nil {
		sourceErr, databaseErr := r.migrator.Close()
		if sourceErr != nil {
			return fmt.Errorf("error closing migrator source: %w", sourceErr)
		}
		if databaseErr != nil {
			return fmt.Errorf("error closing migrator database: %w", databaseErr)
		}
	}
	return nil
}
