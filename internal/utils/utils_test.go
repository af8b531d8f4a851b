package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("hunter22", "not-a-hash"))
}

func TestNewCid(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		cid := NewCid()
		assert.Len(t, cid, 8)
		for _, r := range cid {
			assert.True(t, strings.ContainsRune(cidAlphabet, r), "unexpected rune %q", r)
		}
		seen[cid] = true
	}
	// 36^8 ids; a hundred draws colliding would mean a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestStringToInt(t *testing.T) {
	assert.Equal(t, 42, StringToInt("42"))
	assert.Equal(t, 0, StringToInt(""))
	assert.Equal(t, 0, StringToInt("abc"))
	assert.Equal(t, -7, StringToInt("-7"))
}
