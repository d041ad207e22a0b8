package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecraft/concierge/backend/internal/kv"
)

func TestMemory_GetMissingKey(t *testing.T) {
	m := kv.NewMemory()

	value, found, err := m.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestMemory_SetThenGet(t *testing.T) {
	m := kv.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "concierge_trips__guest", []byte(`{"trips":[]}`)))

	value, found, err := m.Get(ctx, "concierge_trips__guest")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"trips":[]}`, string(value))
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := kv.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v1")))
	require.NoError(t, m.Set(ctx, "k", []byte("v2")))

	value, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(value))
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m := kv.NewMemory()
	ctx := context.Background()

	written := []byte("original")
	require.NoError(t, m.Set(ctx, "k", written))
	written[0] = 'X'

	value, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(value), "stored value must not alias the caller's slice")

	value[0] = 'Y'
	again, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again), "returned value must not alias the stored slice")
}
