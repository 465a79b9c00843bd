package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", payload{Name: "acme", Count: 3}, time.Minute))

	var out payload
	found, err := m.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "acme", Count: 3}, out)
}

func TestMemory_MissingKey(t *testing.T) {
	m := NewMemory()

	var out payload
	found, err := m.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", payload{}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var out payload
	found, _ := m.Get(ctx, "k", &out)
	assert.False(t, found)
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", payload{}, time.Minute))
	require.NoError(t, m.Delete(ctx, "k"))

	var out payload
	found, _ := m.Get(ctx, "k", &out)
	assert.False(t, found)
}

func TestMemory_DeleteByPrefix(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "products:view:1", payload{}, time.Minute))
	require.NoError(t, m.Set(ctx, "products:list:p1", payload{}, time.Minute))
	require.NoError(t, m.Set(ctx, "brands:view:1", payload{}, time.Minute))

	require.NoError(t, m.DeleteByPrefix(ctx, "products:"))

	var out payload
	found, _ := m.Get(ctx, "products:view:1", &out)
	assert.False(t, found)
	found, _ = m.Get(ctx, "products:list:p1", &out)
	assert.False(t, found)
	found, _ = m.Get(ctx, "brands:view:1", &out)
	assert.True(t, found)
}
