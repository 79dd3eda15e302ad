package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("high_score")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("high_score", "120"))
	v, ok, err := s.Get("high_score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "120", v)

	s.Fail(true)
	assert.ErrorIs(t, s.Set("high_score", "1"), ErrUnavailable)
	_, _, err = s.Get("high_score")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := s.Get("high_score")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("high_score", "100"))
	require.NoError(t, s.Set("high_score", "250"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("high_score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "250", v)
}
