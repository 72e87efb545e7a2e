package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTempPasswordLengthAndAlphabet(t *testing.T) {
	pw, err := GenerateTempPassword(TempPasswordLength)
	require.NoError(t, err)
	assert.Len(t, pw, TempPasswordLength)
	assert.Regexp(t, "^[A-Za-z0-9]+$", pw)
	assert.GreaterOrEqual(t, TempPasswordLength, 8)
}

func TestGenerateTempPasswordIsUnpredictable(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		pw, err := GenerateTempPassword(TempPasswordLength)
		require.NoError(t, err)
		assert.False(t, seen[pw], "generated password repeated: %s", pw)
		seen[pw] = true
	}
}
