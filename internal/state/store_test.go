package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "id1", NSProfile)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "id1", NSProfile, []byte(`{"name":"a"}`)))

	raw, ok, err := store.Get(ctx, "id1", NSProfile)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"a"}`, string(raw))

	// namespaces and identities are isolated
	_, ok, err = store.Get(ctx, "id1", NSSettings)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(ctx, "id2", NSProfile)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "id1", NSProfile))
	_, ok, err = store.Get(ctx, "id1", NSProfile)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out record
	ok, err := GetJSON(ctx, store, "id1", NSRewards, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, PutJSON(ctx, store, "id1", NSRewards, record{Name: "rider", Count: 2}))

	ok, err = GetJSON(ctx, store, "id1", NSRewards, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record{Name: "rider", Count: 2}, out)
}
