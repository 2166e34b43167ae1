package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestGetSetDelete(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var got item
	require.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", item{ID: 1, Name: "Hall"}, time.Minute))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, item{ID: 1, Name: "Hall"}, got)

	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestDeletePattern(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ticketeer:venues:detail:id:1", item{ID: 1}, 0))
	require.NoError(t, c.Set(ctx, "ticketeer:venues:layout:id:2", item{ID: 2}, 0))
	require.NoError(t, c.Set(ctx, "ticketeer:events:detail:id:3", item{ID: 3}, 0))

	require.NoError(t, c.DeletePattern(ctx, "ticketeer:venues:*"))

	assert.False(t, mr.Exists("ticketeer:venues:detail:id:1"))
	assert.False(t, mr.Exists("ticketeer:venues:layout:id:2"))
	assert.True(t, mr.Exists("ticketeer:events:detail:id:3"))
}

func TestGetOrSet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return item{ID: 9, Name: "fetched"}, nil
	}

	var first, second item
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, fetch, &first))
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	boom := errors.New("boom")
	err := c.GetOrSet(ctx, "other", time.Minute, func() (interface{}, error) { return nil, boom }, &first)
	assert.ErrorIs(t, err, boom)
}

func TestNilClientAlwaysMisses(t *testing.T) {
	c := NewService(nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", item{ID: 1}, time.Minute))
	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, func() (interface{}, error) { return item{ID: 2}, nil }, &got))
	assert.Equal(t, int64(2), got.ID)
}
