package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_USER", "trivia")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "trivia")
}

func TestLoadDefaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddr)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Empty(t, cfg.Security.JWTSecret, "write protection is optional")
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRequiresPostgres(t *testing.T) {
	t.Setenv("PG_HOST", "")
	t.Setenv("PG_USER", "")
	t.Setenv("PG_PASSWORD", "")
	t.Setenv("PG_DATABASE", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("PG_PORT", "6543")

	pg, err := LoadPostgres()
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal port=6543 user=trivia password=secret dbname=trivia sslmode=disable", pg.DSN())
}
