package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		ref, err := GenerateReference()
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		seen[ref] = struct{}{}
	}

	assert.Greater(t, len(seen), 190)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}
