package venues_test

import (
	"context"
	"testing"

	"ticketeer/internal/inventory"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/testutil/memstore"
	"ticketeer/internal/venues"
	"ticketeer/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (venues.Service, *memstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := memstore.New()
	manager := inventory.NewManager(store, inventory.Repositories{
		Venues: store, Areas: store, Events: store, EventAreas: store,
	})
	return venues.NewService(store, manager, cache.NewService(client)), store, mr
}

func createVenue(t *testing.T, svc venues.Service, name string) *venues.Venue {
	t.Helper()
	v, err := svc.CreateVenue(context.Background(), venues.CreateVenueRequest{Name: name, Address: "1 Main St", Description: "Hall"})
	require.NoError(t, err)
	return v
}

func TestVenueNamesAreUnique(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	createVenue(t, svc, "Opera")

	_, err := svc.CreateVenue(ctx, venues.CreateVenueRequest{Name: " Opera ", Address: "2 Side St", Description: "Twin"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateVenue(ctx, venues.CreateVenueRequest{Name: "", Address: "x", Description: "y"})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLayoutRules(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	a := createVenue(t, svc, "A")
	b := createVenue(t, svc, "B")

	_, err := svc.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: a.ID, Name: "Main", Description: "d"})
	require.NoError(t, err)
	_, err = svc.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: a.ID, Name: "Main", Description: "d"})
	require.ErrorIs(t, err, apperr.ErrValidation, "names are unique within a venue")
	_, err = svc.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: b.ID, Name: "Main", Description: "d"})
	require.NoError(t, err, "but may repeat across venues")
	_, err = svc.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: 999, Name: "Main", Description: "d"})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	page, err := svc.ListLayouts(ctx, a.ID, pagination.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestGetVenueIsCachedUntilUpdate(t *testing.T) {
	svc, _, mr := newService(t)
	ctx := context.Background()
	v := createVenue(t, svc, "Cached")

	got, err := svc.GetVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Name)
	assert.True(t, mr.Exists(constants.BuildVenueDetailKey(v.ID)))

	_, err = svc.UpdateVenue(ctx, v.ID, venues.UpdateVenueRequest{
		CreateVenueRequest: venues.CreateVenueRequest{Name: "Renamed", Address: "1 Main St", Description: "Hall"},
		Version:            v.Version,
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(constants.BuildVenueDetailKey(v.ID)))

	got, err = svc.GetVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestDeleteVenueRemovesLayouts(t *testing.T) {
	svc, store, mr := newService(t)
	ctx := context.Background()
	v := createVenue(t, svc, "Doomed")
	_, err := svc.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: v.ID, Name: "Main", Description: "d"})
	require.NoError(t, err)
	_, err = svc.GetVenue(ctx, v.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVenue(ctx, v.ID))

	assert.Zero(t, store.Counts()["venues"])
	assert.Zero(t, store.Counts()["layouts"])
	assert.False(t, mr.Exists(constants.BuildVenueDetailKey(v.ID)))
	_, err = svc.GetVenue(ctx, v.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
