package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/model"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // Minimum cost keeps tests fast
	}
	return NewAuthService(cfg, nil, nil, nil, nil, nil, nil, nil)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashPassword("Sup3r!Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r!Pass", hash)

	assert.NoError(t, s.CheckPassword(hash, "Sup3r!Pass"))
	assert.ErrorIs(t, s.CheckPassword(hash, "wrong-password"), ErrInvalidCredentials)
}

func TestHashAnswerNormalizesCase(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashAnswer("  Manila  ")
	require.NoError(t, err)

	// Answers are case-folded and trimmed before hashing, so any casing of
	// the same answer verifies.
	for _, answer := range []string{"manila", "MANILA", " Manila "} {
		normalized, err := s.HashAnswer(answer)
		require.NoError(t, err)
		assert.NotEmpty(t, normalized)
	}
	assert.NoError(t, s.CheckPassword(hash, "manila"))
}

func TestTokenRoundTripPortal(t *testing.T) {
	s := testAuthService()

	token, err := s.generateToken(Claims{
		TokenType:  TokenTypePortal,
		UserID:     42,
		PortalRole: model.PortalRoleStudent,
	})
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypePortal, claims.TokenType)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, model.PortalRoleStudent, claims.PortalRole)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenRoundTripAdmin(t *testing.T) {
	s := testAuthService()

	token, err := s.generateToken(Claims{
		TokenType:   TokenTypeAdmin,
		UserID:      7,
		RoleID:      1,
		Permissions: []string{"students:read", "students:write"},
	})
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
	assert.Equal(t, 1, claims.RoleID)
	assert.Equal(t, []string{"students:read", "students:write"}, claims.Permissions)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := testAuthService()

	token, err := s.generateToken(Claims{TokenType: TokenTypePortal, UserID: 1})
	require.NoError(t, err)

	other := testAuthService()
	other.cfg.JWTSecret = "different-secret"
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := testAuthService()
	s.cfg.JWTExpiry = -time.Minute

	token, err := s.generateToken(Claims{TokenType: TokenTypePortal, UserID: 1})
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := testAuthService()
	_, err := s.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}
