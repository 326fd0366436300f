package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "triviactl",
	Short:         "Operator tooling for the trivia API",
	Long:          "triviactl migrates the trivia database, seeds it from public trivia sources and mints API tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("APP_ENV") == "production" {
			return
		}
		envFile, _ := cmd.Flags().GetString("env-file")
		loadEnvFile(envFile)
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "configs/.env", "dotenv file loaded outside production")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: could not load %s: %v", path, err)
	}
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return logging.New("triviactl", env, level)
}
