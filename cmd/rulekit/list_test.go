package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))
	assert.Equal(t, "long na...", truncate("long name that overflows", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestTruncate_MultibyteSafe(t *testing.T) {
	s := strings.Repeat("é", 20)
	got := truncate(s, 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
}
