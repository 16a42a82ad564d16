package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFlag(t *testing.T) {
	rem, found := extractFlag([]string{"route", "url", "--abort"}, "--abort")
	assert.True(t, found)
	assert.Equal(t, []string{"route", "url"}, rem)

	rem, found = extractFlag([]string{"route", "url"}, "--abort")
	assert.False(t, found)
	assert.Equal(t, []string{"route", "url"}, rem)

	// Every occurrence is removed.
	rem, found = extractFlag([]string{"--x", "a", "--x"}, "--x")
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, rem)
}

func TestExtractFlagValue(t *testing.T) {
	rem, v := extractFlagValue([]string{"role", "button", "--name", "Submit", "tail"}, "--name")
	require.NotNil(t, v)
	assert.Equal(t, "Submit", *v)
	assert.Equal(t, []string{"role", "button", "tail"}, rem)

	// Flag at the end has no value but is still removed.
	rem, v = extractFlagValue([]string{"role", "--name"}, "--name")
	assert.Nil(t, v)
	assert.Equal(t, []string{"role"}, rem)

	rem, v = extractFlagValue([]string{"role", "button"}, "--name")
	assert.Nil(t, v)
	assert.Equal(t, []string{"role", "button"}, rem)
}

func TestIntHelpers(t *testing.T) {
	args := []string{"10", "abc"}

	n, ok := intAt(args, 0)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = intAt(args, 1)
	assert.False(t, ok)
	_, ok = intAt(args, 5)
	assert.False(t, ok)

	assert.Equal(t, 10, intOr(args, 0, 7))
	assert.Equal(t, 7, intOr(args, 1, 7))
	assert.Equal(t, 7, intOr(args, 5, 7))
}

func TestJoinFrom(t *testing.T) {
	args := []string{"a", "b", "c"}
	assert.Equal(t, "b c", joinFrom(args, 1))
	assert.Equal(t, "", joinFrom(args, 3))
}
