package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/db"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|reset]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := commandLogger(cmd)

		pg, err := config.LoadPostgres()
		if err != nil {
			return err
		}

		// goose works on database/sql; pgx provides the driver.
		conn, err := sql.Open("pgx", pg.DSN())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()

		ctx := cmd.Context()
		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		logger.Info().
			Str("host", pg.Host).
			Int("port", pg.Port).
			Str("database", pg.Database).
			Str("command", args[0]).
			Msg("running migrations")

		if err := db.Migrate(ctx, conn, args[0]); err != nil {
			return fmt.Errorf("migrate %s: %w", args[0], err)
		}
		logger.Info().Msg("migrations finished")
		return nil
	},
}
