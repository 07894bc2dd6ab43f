package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "session-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("secret", "session-1", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("secret", "session-1", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}
