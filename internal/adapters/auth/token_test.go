package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssueAndVerify(t *testing.T) {
	tokens := NewJWT("test-secret")

	token, err := tokens.Issue("admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Issue("admin", time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	tokens := NewJWT("test-secret")

	token, err := tokens.Issue("admin", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	require.Error(t, err)
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	_, err := NewJWT("test-secret").Verify("not-a-jwt")
	require.Error(t, err)
}
