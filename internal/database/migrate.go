package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/config"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every pending schema migration for the connection's driver.
//
// On MySQL the migration runs on one connection taken from db, which is
// returned to the pool afterwards. On sqlite the migrate instance is left open
// because closing it closes db, which the caller owns.
func Migrate(db *sqlx.DB) error {
	ctx := context.Background()
	var (
		driver migratedb.Driver
		err    error
	)
	switch db.DriverName() {
	case config.DriverMySQL:
		var conn *sql.Conn
		conn, err = db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("db.Conn > %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
				slog.Default().Warn("failed to release the migration connection", slog.Any("error", err))
			}
		}()
		driver, err = migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	if err != nil {
		return fmt.Errorf("migrate driver %s > %w", db.DriverName(), err)
	}

	source, err := iofs.New(migrations, "migrations/"+db.DriverName())
	if err != nil {
		return fmt.Errorf("iofs.New > %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.DriverName(), driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance > %w", err)
	}
	if db.DriverName() == config.DriverMySQL {
		// the mysql driver only owns the connection, so this leaves db open
		defer func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				slog.Default().Warn("failed to close the migrate instance",
					slog.Any("source_error", srcErr),
					slog.Any("database_error", dbErr),
				)
			}
		}()
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Default().Debug("database schema is up to date", slog.String("driver", db.DriverName()))
			return nil
		}
		return fmt.Errorf("m.Up > %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("m.Version > %w", err)
	}
	slog.Default().Info("database schema migrated",
		slog.String("driver", db.DriverName()),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}
