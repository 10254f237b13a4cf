//go:build integration

package advisory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voteguard/pkg/testutil/containers"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	cache := NewRedisCache(rc.Client)

	_, ok, err := cache.Get(ctx, "risk:VOT-1:0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "risk:VOT-1:0", "elevated risk", time.Minute))

	value, ok, err := cache.Get(ctx, "risk:VOT-1:0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "elevated risk", value)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	cache := NewRedisCache(rc.Client)

	require.NoError(t, cache.Set(ctx, "resolution:HID-X", "keep A", 500*time.Millisecond))

	require.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, "resolution:HID-X")
		return err == nil && !ok
	}, 5*time.Second, 200*time.Millisecond)
}
