package schema

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/datasource"
)

// fakeClock advances only when told to.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) Now() time.Time          { return f.current }
func (f *fakeClock) Advance(d time.Duration) { f.current = f.current.Add(d) }

func newCacheUnderTest(t *testing.T) (*Cache, *datasource.MockSampler, *fakeClock) {
	t.Helper()

	sampler := &datasource.MockSampler{
		SampleRowsFunc: func(ctx context.Context, table string, limit int) ([]map[string]any, error) {
			return userRows(), nil
		},
	}
	clock := &fakeClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}

	d := NewDiscoverer(sampler, 3, zap.NewNop())
	return NewCache(d, 5*time.Minute, clock.Now), sampler, clock
}

func TestCacheServesFreshSnapshotWithoutRediscovery(t *testing.T) {
	cache, sampler, clock := newCacheUnderTest(t)
	ctx := context.Background()

	first, err := cache.Get(ctx)
	require.NoError(t, err)
	callsAfterFirst := sampler.SampleRowsCalls
	assert.Equal(t, 5, callsAfterFirst) // one sample per known table

	clock.Advance(4 * time.Minute)

	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, callsAfterFirst, sampler.SampleRowsCalls)
}

func TestCacheRediscoversAfterTTL(t *testing.T) {
	cache, sampler, clock := newCacheUnderTest(t)
	ctx := context.Background()

	first, err := cache.Get(ctx)
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)

	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 10, sampler.SampleRowsCalls)
	assert.Equal(t, clock.Now(), second.CapturedAt)
}

func TestCacheExpiryBoundaryIsExclusive(t *testing.T) {
	cache, sampler, clock := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	// Exactly at the TTL the snapshot is already stale.
	clock.Advance(5 * time.Minute)

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, sampler.SampleRowsCalls)
}

func TestInvalidateForcesRediscovery(t *testing.T) {
	cache, sampler, _ := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, sampler.SampleRowsCalls)
}
