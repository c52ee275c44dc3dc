package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirPenguin555/Whats-That-Color/internal/config"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

func newTestAuth() *AuthService {
	return NewAuthService(config.AuthConfig{JWTSecret: "test-secret", PlayerTokenTTL: time.Hour})
}

func TestIssueAnonymousPlayer(t *testing.T) {
	auth := newTestAuth()

	resp, err := auth.IssueAnonymousPlayer()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.PlayerID, "anon_"))
	_, err = uuid.Parse(strings.TrimPrefix(resp.PlayerID, "anon_"))
	assert.NoError(t, err, "player IDs carry a full uuid")

	claims, err := auth.ValidatePlayerToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.PlayerID, claims.PlayerID)

	other, err := auth.IssueAnonymousPlayer()
	require.NoError(t, err)
	assert.NotEqual(t, resp.PlayerID, other.PlayerID)
}

func TestValidatePlayerToken_Rejects(t *testing.T) {
	auth := newTestAuth()
	token, err := auth.GeneratePlayerToken("anon_12345678")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(config.AuthConfig{JWTSecret: "other", PlayerTokenTTL: time.Hour})
		_, err := other.ValidatePlayerToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestAuth()
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ValidatePlayerToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ValidatePlayerToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, &model.PlayerClaims{PlayerID: "anon_x"})
		s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = auth.ValidatePlayerToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing player id", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &model.PlayerClaims{})
		s, err := tok.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = auth.ValidatePlayerToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateAdminToken(t *testing.T) {
	auth := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AdminToken: "ops-token"})
	assert.True(t, auth.ValidateAdminToken("ops-token"))
	assert.False(t, auth.ValidateAdminToken("ops-token2"))
	assert.False(t, auth.ValidateAdminToken(""))

	disabled := newTestAuth()
	assert.False(t, disabled.ValidateAdminToken(""))
	assert.False(t, disabled.ValidateAdminToken("anything"))
}
