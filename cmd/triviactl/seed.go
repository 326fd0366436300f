package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
	"github.com/gokatarajesh/trivia-api/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import questions from a public trivia source",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		amount, _ := cmd.Flags().GetInt("amount")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		provider, err := providerFor(source, resolveAPIKey(cmd))
		if err != nil {
			return err
		}

		logger := commandLogger(cmd)
		pg, err := config.LoadPostgres()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := app.Connect(ctx, pg)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := app.NewStore(pool, nil, logger)
		res, err := seed.New(store, logger).Run(ctx, provider, amount, difficulty)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, inserted %d, skipped %d\n", res.Fetched, res.Inserted, res.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("source", "opentdb", "Question source: opentdb or triviaapi")
	seedCmd.Flags().IntP("amount", "n", 20, "Number of questions to fetch")
	seedCmd.Flags().String("difficulty", "", "Restrict to easy, medium or hard")
	seedCmd.Flags().String("api-key", "", "The Trivia API key (optional, defaults to TRIVIA_API_KEY)")
}

// resolveAPIKey prefers --api-key and falls back to TRIVIA_API_KEY, read
// after the dotenv file has been loaded.
func resolveAPIKey(cmd *cobra.Command) string {
	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		return key
	}
	return os.Getenv("TRIVIA_API_KEY")
}

func providerFor(source, apiKey string) (external.Provider, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	switch source {
	case "opentdb":
		return external.NewOpenTDBClient("", client), nil
	case "triviaapi":
		return external.NewTriviaAPIClient("", apiKey, client), nil
	default:
		return nil, fmt.Errorf("unknown source %q (use opentdb or triviaapi)", source)
	}
}
