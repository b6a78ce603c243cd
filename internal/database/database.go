package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fyyur/internal/config"
	"fyyur/internal/logger"
)

var retryDelay = 2 * time.Second

// Open connects to the configured database, retrying while it comes up.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	driverName, err := sqlDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var sqldb *sql.DB
	for i := 0; i < retries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Driver, i+1, retries))
		sqldb, err = sql.Open(driverName, cfg.URL)
		if err == nil {
			err = sqldb.PingContext(ctx)
			if err == nil {
				break
			}
			sqldb.Close()
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to %s: %v", cfg.Driver, err))
		if i < retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, retries, err)
	}

	if cfg.Driver == "sqlite" {
		// a single connection keeps in-memory databases and PRAGMAs consistent
		sqldb.SetMaxOpenConns(1)
		if _, err := sqldb.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	} else {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	log.Info("DATABASE", fmt.Sprintf("✅ %s connection successful", cfg.Driver))
	return Wrap(sqldb, cfg.Driver)
}

// Wrap picks the bun dialect for driver.
func Wrap(sqldb *sql.DB, driver string) (*bun.DB, error) {
	switch driver {
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "mysql":
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	case "sqlite":
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

func sqlDriver(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return sqliteshim.ShimName, nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
}
