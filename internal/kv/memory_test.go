package kv

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "recentDocuments", `[]`))

	v, err := m.Get(ctx, "recentDocuments")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	// Set replaces the previous value.
	require.NoError(t, m.Set(ctx, "recentDocuments", `[{"uri":"a"}]`))
	v, err = m.Get(ctx, "recentDocuments")
	require.NoError(t, err)
	assert.Equal(t, `[{"uri":"a"}]`, v)

	require.NoError(t, m.Remove(ctx, "recentDocuments"))
	_, err = m.Get(ctx, "recentDocuments")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is not an error.
	require.NoError(t, m.Remove(ctx, "recentDocuments"))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", "v")
			_, _ = m.Get(ctx, "k")
		}()
	}
	wg.Wait()

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
