package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGetDelete(t *testing.T) {
	c := GetCache()
	assert.Same(t, c, GetCache(), "cache is a singleton")

	c.Set("k", "v", time.Minute)
	assert.Equal(t, "v", c.Get("k"))

	c.Delete("k")
	assert.Nil(t, c.Get("k"))
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("short", 1, 10*time.Millisecond)
	assert.Equal(t, 1, c.Get("short"))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, c.Get("short"))
}
