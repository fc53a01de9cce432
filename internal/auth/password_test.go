package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", hash)
	assert.True(t, VerifyPassword("pw1", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPassword_IsSalted(t *testing.T) {
	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("pw1", first))
	assert.True(t, VerifyPassword("pw1", second))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("pw1", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("pw1", ""))
}

func TestHashPassword_Length(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "at limit", password: strings.Repeat("p", MaxPasswordBytes)},
		{name: "over limit", password: strings.Repeat("p", MaxPasswordBytes+1), wantErr: true},
		{name: "multibyte over limit", password: strings.Repeat("é", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPasswordTooLong)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
