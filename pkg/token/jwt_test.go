package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseAccessToken(t *testing.T) {
	jwtSvc := NewJwtServiceOptions("test-secret")

	created, err := jwtSvc.CreateAccessToken("subject-id", "user", "Some User")
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.False(t, created.Expiry.IsZero())

	claims, err := jwtSvc.ParseTokenStr(created.Token)
	require.NoError(t, err)
	assert.Equal(t, "subject-id", claims.Subject)
	assert.Equal(t, "user", claims.Username)
	assert.Equal(t, "Some User", claims.DisplayName)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	created, err := NewJwtServiceOptions("secret-a").CreateAccessToken("id", "user", "")
	require.NoError(t, err)

	_, err = NewJwtServiceOptions("secret-b").ParseTokenStr(created.Token)
	assert.Error(t, err)
}

func TestCookieOptions(t *testing.T) {
	jwtSvc := NewJwtServiceOptions("secret",
		WithCookieHttpOnly(true),
		WithCookieSecure(true),
	)
	assert.True(t, jwtSvc.CookieHttpOnly)
	assert.True(t, jwtSvc.CookieSecure)
}
