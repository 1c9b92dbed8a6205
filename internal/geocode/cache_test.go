package geocode

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	lat, lon := 38.9216, -77.0198
	loc := &Location{ZipCode: "20059", City: "Washington", State: "DC", Latitude: &lat, Longitude: &lon}
	cache.Set(ctx, loc)

	got, ok := cache.Get(ctx, "20059")
	require.True(t, ok)
	assert.Equal(t, loc.City, got.City)
	assert.Equal(t, loc.State, got.State)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, lat, *got.Latitude, 0.0001)
}

func TestCache_Miss(t *testing.T) {
	cache := newTestCache(t)
	_, ok := cache.Get(context.Background(), "90210")
	assert.False(t, ok)
}

func TestResolve_UsesCacheBeforeNetwork(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	cache.Set(ctx, &Location{ZipCode: "20059", City: "Washington", State: "DC"})

	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, WithCache(cache))

	loc, err := client.Resolve(ctx, "20059", "DC")
	require.NoError(t, err)
	assert.Equal(t, "Washington", loc.City)
	assert.Equal(t, 0, calls, "cached lookup must not hit the network")
}

func TestResolve_PopulatesCache(t *testing.T) {
	cache := newTestCache(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(howardPayload))
	}, WithCache(cache))

	_, err := client.Resolve(context.Background(), "20059", "")
	require.NoError(t, err)

	got, ok := cache.Get(context.Background(), "20059")
	require.True(t, ok)
	assert.Equal(t, "DC", got.State)
}
