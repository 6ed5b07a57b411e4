package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, client, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, client, "k", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, client, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestGetSetJSONNilClient(t *testing.T) {
	ctx := context.Background()

	found, err := GetJSON(ctx, nil, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, nil, "k", payload{}, time.Minute))
}

func TestAsideFetchesOnMissThenServesFromCache(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fresh", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, client, "k", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", first.Name)

	var second payload
	require.NoError(t, Aside(ctx, client, "k", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read should hit the cache")
	assert.Equal(t, first, second)
}

func TestAsideNilClientAlwaysFetches(t *testing.T) {
	ctx := context.Background()

	calls := 0
	var dest payload
	fetch := func() error {
		calls++
		dest = payload{Name: "direct"}
		return nil
	}

	require.NoError(t, Aside(ctx, nil, "k", &dest, time.Minute, fetch))
	require.NoError(t, Aside(ctx, nil, "k", &dest, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	client := newTestRedis(t)

	sentinel := assert.AnError
	var dest payload
	err := Aside(context.Background(), client, "k", &dest, time.Minute, func() error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestProfileKeyAndInvalidate(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	key := ProfileKey(7)
	assert.Equal(t, "profile:7", key)

	require.NoError(t, SetJSON(ctx, client, key, payload{Name: "cached"}, time.Minute))
	InvalidateProfile(ctx, client, 7)

	found, err := GetJSON(ctx, client, key, &payload{})
	require.NoError(t, err)
	assert.False(t, found)
}
