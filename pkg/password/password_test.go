package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("AdminSecurePass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "AdminSecurePass123!", hashed)

	assert.True(t, Verify(hashed, "AdminSecurePass123!"))
	assert.False(t, Verify(hashed, "adminsecurepass123!"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)
	second, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, Verify("not-a-bcrypt-hash", "password123"))
	assert.False(t, Verify("", ""))
}
