package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration commands accepted by Migrate.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandUpTo    = "up-to"
)

// Migrate runs a goose command against the embedded migrations. A nil
// database is a no-op.
// CommandUpTo takes the target version as its single argument.
func Migrate(ctx context.Context, database *sql.DB, command string, args ...string) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, database, migrationsDir)
	case CommandDown:
		return goose.DownContext(ctx, database, migrationsDir)
	case CommandStatus:
		return goose.StatusContext(ctx, database, migrationsDir)
	case CommandVersion:
		return goose.VersionContext(ctx, database, migrationsDir)
	case CommandUpTo:
		if len(args) != 1 {
			return fmt.Errorf("%s requires a target version", CommandUpTo)
		}
		version, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[0], err)
		}
		return goose.UpToContext(ctx, database, migrationsDir, version)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
