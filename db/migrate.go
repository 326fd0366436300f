package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrate runs a goose command ("up", "down", "status", "reset") against
// the embedded migrations.
func Migrate(ctx context.Context, conn *sql.DB, command string) error {
	goose.SetBaseFS(Migrations)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, conn, MigrationsDir)
	case "down":
		return goose.DownContext(ctx, conn, MigrationsDir)
	case "status":
		return goose.StatusContext(ctx, conn, MigrationsDir)
	case "reset":
		return goose.ResetContext(ctx, conn, MigrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q (use up, down, status or reset)", command)
	}
}
