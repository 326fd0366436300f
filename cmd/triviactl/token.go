package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for question writes",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		sec, err := config.LoadSecurity()
		if err != nil {
			return err
		}
		if sec.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set; the API accepts writes without a token")
		}
		if ttl == 0 {
			ttl = sec.TokenTTL
		}

		manager := jwt.NewManager(jwt.TokenConfig{
			Secret: []byte(sec.JWTSecret),
			TTL:    ttl,
			Issuer: sec.JWTIssuer,
		})
		token, err := manager.Issue(subject, permissions)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "trivia-admin", "Token subject")
	tokenCmd.Flags().StringSlice("permissions", []string{question.PermissionCreate, question.PermissionDelete}, "Granted permissions")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_TOKEN_TTL)")
}
