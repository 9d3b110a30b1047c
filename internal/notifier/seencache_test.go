package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCacheMarksAndChecks(t *testing.T) {
	dir := t.TempDir()
	c, err := NewSeenCache(dir)
	require.NoError(t, err)

	assert.False(t, c.IsSeen("job-1"))
	c.MarkSeen("job-1")
	assert.True(t, c.IsSeen("job-1"))
}

func TestSeenCachePersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	c1, err := NewSeenCache(dir)
	require.NoError(t, err)
	c1.MarkSeen("job-1")
	c1.MarkSeen("job-2")

	c2, err := NewSeenCache(dir)
	require.NoError(t, err)
	assert.True(t, c2.IsSeen("job-1"))
	assert.True(t, c2.IsSeen("job-2"))
	assert.False(t, c2.IsSeen("job-3"))
}

func TestSeenCacheMarkSeenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	c, err := NewSeenCache(dir)
	require.NoError(t, err)

	c.MarkSeen("job-1")
	c.MarkSeen("job-1")
	assert.True(t, c.IsSeen("job-1"))
}
