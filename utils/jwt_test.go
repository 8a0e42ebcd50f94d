package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "clave-de-prueba")

	token, err := GenerateToken("abc123", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.ID)
	assert.Equal(t, "client", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("no.es.un.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "clave-a")
	token, err := GenerateToken("abc123", "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "clave-b")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
