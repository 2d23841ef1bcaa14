package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Encode("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestCodec_NoExpiryWhenTTLZero(t *testing.T) {
	codec := NewCodec("test-secret", 0)

	token, err := codec.Encode("user-123", "")
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestCodec_Decode_InvalidTokens(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	valid, err := codec.Encode("user-123", "alice@example.com")
	require.NoError(t, err)

	otherCodec := NewCodec("other-secret", time.Hour)
	wrongKey, err := otherCodec.Encode("user-123", "alice@example.com")
	require.NoError(t, err)

	// Flip a character inside the signature segment
	tampered := valid[:len(valid)-2] + "xx"

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	truncated := parts[0] + "." + parts[1]

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not-a-token",
		"truncated":       truncated,
		"tampered":        tampered,
		"wrong key":       wrongKey,
		"header garbage":  "xxxx." + parts[1] + "." + parts[2],
		"payload garbage": parts[0] + ".xxxx." + parts[2],
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := codec.Decode(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidCredential)
		})
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Hour)

	token, err := codec.Encode("user-123", "")
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestCodec_Decode_MissingSubject(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Encode("", "alice@example.com")
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
