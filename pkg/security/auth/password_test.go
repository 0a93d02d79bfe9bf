package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected error
	}{
		{
			name:     "valid password",
			password: "Password1",
			expected: nil,
		},
		{
			name:     "too short",
			password: "Pass1",
			expected: ErrPasswordTooShort,
		},
		{
			name:     "missing digit",
			password: "Passwords",
			expected: ErrPasswordNeedsDigit,
		},
		{
			name:     "missing uppercase",
			password: "password1",
			expected: ErrPasswordNeedsUpper,
		},
		{
			name:     "exactly eight characters",
			password: "Abcdefg1",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEqual(t, "Password1", hash)

	assert.True(t, VerifyPassword(hash, "Password1"))
	assert.False(t, VerifyPassword(hash, "Password2"))
}
