package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Guard checks bearer tokens against a required permission.
type Guard struct {
	tokens *jwt.Manager
	logger zerolog.Logger
}

// NewGuard returns nil when no signing secret is configured, leaving writes open.
func NewGuard(tokens *jwt.Manager, secret string, logger zerolog.Logger) *Guard {
	if tokens == nil || secret == "" {
		return nil
	}
	return &Guard{
		tokens: tokens,
		logger: logger.With().Str("component", "auth_guard").Logger(),
	}
}

// Allow validates the Authorization header and writes 401/403 on rejection.
func (g *Guard) Allow(w http.ResponseWriter, r *http.Request, permission string) bool {
	token, ok := bearerToken(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return false
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		g.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
		message := "Invalid token"
		if errors.Is(err, jwt.ErrExpiredToken) {
			message = "Token expired"
		}
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, message)
		return false
	}

	if !claims.Has(permission) {
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, "Permission "+permission+" required")
		return false
	}
	return true
}

// Parse "Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
