package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		username string
		role     string
		useruid  string
	}{
		{
			name:     "admin user",
			username: "admin_user",
			role:     "admin",
			useruid:  "3f1f9a34-0d93-4b32-a6ab-6e2f4f1f2a01",
		},
		{
			name:     "regular viewer",
			username: "regular_user",
			role:     "user",
			useruid:  "f3f07c60-9f38-4b29-a3c2-2b8f8a9a1c02",
		},
		{
			name:     "creator",
			username: "creator_user",
			role:     "creator",
			useruid:  "8a9d9a1c-57e1-4a64-9e6b-b0f7f1b2cd03",
		},
		{
			name:     "user with numbers in username",
			username: "user123",
			role:     "user",
			useruid:  "c2de8e55-6a6b-45da-8e11-9a2f4d5e6f04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.username, tt.role, tt.useruid)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.useruid, claims.UserUID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	validToken, err := maker.GenerateToken("testuser", "user", "uid-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredToken(t, secretKey),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.GenerateToken("testuser", "admin", "uid-1")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken("testuser", "user", "uid-1")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken("testuser", "user", "uid-1")
	require.NoError(t, err)
	return token
}
