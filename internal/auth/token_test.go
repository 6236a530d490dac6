package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue("buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := codec.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email)
}

func TestTokenCodec_EmptySecret(t *testing.T) {
	_, err := NewTokenCodec("", time.Hour)
	assert.Error(t, err)
}

func TestTokenCodec_MissingToken(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_MalformedToken(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := codec.Issue("buyer@example.com")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue("buyer@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenCodec("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("buyer@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
