package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "sketch.db"), WithMkdirAll())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": db,
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := s.Get(ctx, "canvasState")
			assert.ErrorIs(err, ErrNotFound)

			assert.NoError(s.Set(ctx, "canvasState", "first"))
			assert.NoError(s.Set(ctx, "canvasState", "second"))

			v, err := s.Get(ctx, "canvasState")
			assert.NoError(err)
			assert.Equal("second", v)

			assert.NoError(s.Delete(ctx, "canvasState"))
			_, err = s.Get(ctx, "canvasState")
			assert.ErrorIs(err, ErrNotFound)

			// Deleting a missing key is not an error.
			assert.NoError(s.Delete(ctx, "missing"))
		})
	}
}

func TestStore_Quota(t *testing.T) {
	ctx := context.Background()
	big := strings.Repeat("x", DefaultMaxValueSize+1)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			assert.NoError(s.Set(ctx, "k", "kept"))
			err := s.Set(ctx, "k", big)
			assert.ErrorIs(err, ErrQuotaExceeded)

			// A rejected write leaves the previous value in place.
			v, err := s.Get(ctx, "k")
			assert.NoError(err)
			assert.Equal("kept", v)
		})
	}
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sketch.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "canvasState", "persisted"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path, WithMaxValueSize(0))
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get(ctx, "canvasState")
	assert.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func TestMemory_Closed(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	m := NewMemory()
	m.SetLimit(4)
	assert.ErrorIs(m.Set(ctx, "k", "12345"), ErrQuotaExceeded)
	assert.NoError(m.Set(ctx, "k", "1234"))

	assert.NoError(m.Close())
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(err, ErrClosed)
	assert.ErrorIs(m.Set(ctx, "k", "v"), ErrClosed)
}
