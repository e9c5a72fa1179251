package controllers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTitleKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("今天的心情很复杂，", 10)

	title := truncateTitle(long)

	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 50, utf8.RuneCountInString(title))
}

func TestTruncateTitleShortMessageUnchanged(t *testing.T) {
	assert.Equal(t, "hello", truncateTitle("hello"))
	assert.Equal(t, "今天心情不错", truncateTitle("今天心情不错"))
}
