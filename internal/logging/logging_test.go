package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsConsoleAndJSONLoggers(t *testing.T) {
	console, err := New(false, false)
	require.NoError(t, err)
	require.NotNil(t, console)
	defer console.Sync()

	jsonLogger, err := New(true, true)
	require.NoError(t, err)
	require.NotNil(t, jsonLogger)
	defer jsonLogger.Sync()
}

func TestTruncateShortensLongStrings(t *testing.T) {
	got := Truncate("hello world", 5)
	assert.Equal(t, "hello...", got)
}

func TestTruncateLeavesShortStringsUntouched(t *testing.T) {
	got := Truncate("hi", 10)
	assert.Equal(t, "hi", got)
}

func TestTruncateTrimsSurroundingWhitespaceFirst(t *testing.T) {
	got := Truncate("   padded   ", 6)
	assert.Equal(t, "padded", got)
}

func TestTruncateZeroLimitYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
}
