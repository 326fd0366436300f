package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
)

func newGuard(t *testing.T) (*Guard, *jwt.Manager) {
	t.Helper()
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("s3cret")})
	guard := NewGuard(tokens, "s3cret", zerolog.Nop())
	require.NotNil(t, guard)
	return guard, tokens
}

func TestNewGuardWithoutSecret(t *testing.T) {
	assert.Nil(t, NewGuard(jwt.NewManager(jwt.TokenConfig{}), "", zerolog.Nop()))
}

func TestGuardAllow(t *testing.T) {
	guard, tokens := newGuard(t)
	writer, err := tokens.Issue("ops", []string{"post:questions"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		perm   string
		allow  bool
		status int
	}{
		{name: "missing header", header: "", perm: "post:questions", status: http.StatusUnauthorized},
		{name: "malformed header", header: "Token " + writer, perm: "post:questions", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", perm: "post:questions", status: http.StatusUnauthorized},
		{name: "missing permission", header: "Bearer " + writer, perm: "delete:questions", status: http.StatusForbidden},
		{name: "granted", header: "Bearer " + writer, perm: "post:questions", allow: true, status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/questions", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			assert.Equal(t, tc.allow, guard.Allow(rec, req, tc.perm))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
