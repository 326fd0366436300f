package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("s3cret")})

	token, err := m.Issue("ops", []string{"post:questions"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.Has("post:questions"))
	assert.False(t, claims.Has("delete:questions"))
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager(TokenConfig{Secret: []byte("one")}).Issue("ops", nil)
	require.NoError(t, err)

	_, err = NewManager(TokenConfig{Secret: []byte("two")}).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("s3cret"), TTL: time.Minute})
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue("ops", nil)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := NewManager(TokenConfig{}).Issue("ops", nil)
	assert.ErrorIs(t, err, ErrNoSecret)
}
