package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "localherald.test", extractOriginHost("https://localherald.test"))
	assert.Equal(t, "localherald.test:3000", extractOriginHost("http://localherald.test:3000"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("localherald.test", "localherald.test"))
	assert.True(t, matchOriginPattern("*.localherald.test", "admin.localherald.test"))
	assert.False(t, matchOriginPattern("*.localherald.test", "localherald.evil.com"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("localherald.test", "other.test"))
}
