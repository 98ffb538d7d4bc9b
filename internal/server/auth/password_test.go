package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword([]byte("correcthorse"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword([]byte("correcthorse"), hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword([]byte("wrongpass"), hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	h2, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerifyPassword_BadFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plainhash"},
		{"wrong algo", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"bad salt b64", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := VerifyPassword([]byte("pw"), tt.hash)
			require.Error(t, err)
		})
	}
}
