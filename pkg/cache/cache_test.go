package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got uint64
	assert.ErrorIs(t, c.Get(ctx, "delay", &got), ErrMiss)

	require.NoError(t, c.Set(ctx, "delay", uint64(60), time.Minute))
	require.NoError(t, c.Get(ctx, "delay", &got))
	assert.Equal(t, uint64(60), got)

	require.NoError(t, c.Delete(ctx, "delay"))
	assert.ErrorIs(t, c.Get(ctx, "delay", &got), ErrMiss)
}

func TestMultiLevelCache_BackfillsLocal(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryCache(time.Minute, time.Minute)
	remote := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(local, remote)

	require.NoError(t, remote.Set(ctx, "k", "v", time.Minute))

	var got string
	require.NoError(t, m.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	got = ""
	require.NoError(t, local.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	require.NoError(t, m.Delete(ctx, "k"))
	assert.ErrorIs(t, m.Get(ctx, "k", &got), ErrMiss)
}

func TestMemoryCache_DoesNotAliasCaller(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	delay := uint64(3600)
	require.NoError(t, c.Set(ctx, "dao:0x1:execution_delay", &delay, time.Minute))
	delay = 0

	var got uint64
	require.NoError(t, c.Get(ctx, "dao:0x1:execution_delay", &got))
	assert.Equal(t, uint64(3600), got)

	got = 7
	var again uint64
	require.NoError(t, c.Get(ctx, "dao:0x1:execution_delay", &again))
	assert.Equal(t, uint64(3600), again)
}

func TestMultiLevelCache_BackfillSurvivesTargetReuse(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryCache(time.Minute, time.Minute)
	remote := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(local, remote)

	require.NoError(t, remote.Set(ctx, "delay", uint64(60), time.Minute))

	var got uint64
	require.NoError(t, m.Get(ctx, "delay", &got))
	got = 0
	require.NoError(t, remote.Delete(ctx, "delay"))

	var fromL1 uint64
	require.NoError(t, m.Get(ctx, "delay", &fromL1))
	assert.Equal(t, uint64(60), fromL1)
}
