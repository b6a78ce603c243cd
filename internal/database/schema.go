package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"fyyur/internal/database/migrations"
	"fyyur/internal/models"
)

// CreateSchema creates the directory tables from the bun models. PostgreSQL
// deployments use the versioned migrations instead.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range []interface{}{(*models.Venue)(nil), (*models.Artist)(nil)} {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*models.Show)(nil)).
		IfNotExists().
		ForeignKey("(?) REFERENCES ? (?) ON DELETE CASCADE", bun.Ident("venue_id"), bun.Ident("venues"), bun.Ident("id")).
		ForeignKey("(?) REFERENCES ? (?) ON DELETE CASCADE", bun.Ident("artist_id"), bun.Ident("artists"), bun.Ident("id")).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create table for shows: %w", err)
	}
	return nil
}

// DropSchema removes the directory tables, shows first.
func DropSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range []interface{}{(*models.Show)(nil), (*models.Artist)(nil), (*models.Venue)(nil)} {
		if _, err := db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table for %T: %w", m, err)
		}
	}
	return nil
}

// Prepare brings the schema up to date for the configured driver.
func Prepare(ctx context.Context, db *bun.DB, driver, migrationsDir string) error {
	if driver != "postgres" {
		return CreateSchema(ctx, db)
	}
	runner := migrations.NewRunner(db, migrations.Options{Dir: migrationsDir})
	defer runner.Close()
	return runner.Up()
}
