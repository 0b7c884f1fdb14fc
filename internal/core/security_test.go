// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	ok, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rehash)
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fluffy", "fluffy"},
		{"  Fluffy  ", "fluffy"},
		{"FLUFFY", "fluffy"},
		{"fluffy", "fluffy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAnswer(tt.in))
	}
}

func TestHashAndVerifyAnswer(t *testing.T) {
	hash, err := HashAnswer("Mrs. Whiskers")
	require.NoError(t, err)

	// Answers verify regardless of case and surrounding whitespace.
	for _, answer := range []string{
		"Mrs. Whiskers",
		"mrs. whiskers",
		"  MRS. WHISKERS  ",
	} {
		ok, verr := VerifyAnswer(answer, hash)
		require.NoError(t, verr)
		assert.True(t, ok, "answer %q should verify", answer)
	}

	ok, err := VerifyAnswer("Mr. Whiskers", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashToken(t *testing.T) {
	token, err := GenerateRefreshToken()
	require.NoError(t, err)

	hash := HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash("other", hash))
}
