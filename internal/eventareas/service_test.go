package eventareas_test

import (
	"context"
	"testing"

	"ticketeer/internal/eventareas"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/testutil/fixture"
	"ticketeer/internal/tickets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduled(t *testing.T) (*fixture.App, eventareas.EventArea) {
	t.Helper()
	app := fixture.New()
	layout := app.Layout(t)
	app.Area(t, layout.ID, 2, 3, 15, 1, 2)
	start, end := fixture.Window(5)
	event := app.Event(t, layout.ID, start, end)

	areas := app.AreasOf(event.ID)
	require.Len(t, areas, 1)
	return app, areas[0]
}

func TestCreateEventArea(t *testing.T) {
	app, area := scheduled(t)
	ctx := context.Background()

	added, err := app.EventAreas.CreateEventArea(ctx, eventareas.CreateEventAreaRequest{
		EventID: area.EventID, Description: " Standing ", CoordX: 9, CoordY: 9, Price: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Standing", added.Description)
	assert.Len(t, app.AreasOf(area.EventID), 2)

	_, err = app.EventAreas.CreateEventArea(ctx, eventareas.CreateEventAreaRequest{EventID: area.EventID, CoordX: 1, CoordY: 1, Price: 0})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = app.EventAreas.CreateEventArea(ctx, eventareas.CreateEventAreaRequest{EventID: 404, CoordX: 1, CoordY: 1, Price: 3})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateEventAreaKeepsEvent(t *testing.T) {
	app, area := scheduled(t)

	updated, err := app.EventAreas.UpdateEventArea(context.Background(), area.ID, eventareas.UpdateEventAreaRequest{
		Description: "Balcony", CoordX: 4, CoordY: 4, Price: 25, Version: area.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, area.EventID, updated.EventID)
	assert.Equal(t, 25.0, updated.Price)

	_, err = app.EventAreas.UpdateEventArea(context.Background(), area.ID, eventareas.UpdateEventAreaRequest{
		CoordX: 4, CoordY: 4, Price: 30, Version: area.Version,
	})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestEventSeatPositions(t *testing.T) {
	app, area := scheduled(t)
	ctx := context.Background()

	_, err := app.EventAreas.CreateEventSeat(ctx, eventareas.CreateEventSeatRequest{EventAreaID: area.ID, Row: 1, Number: 1})
	require.ErrorIs(t, err, apperr.ErrValidation, "position already materialized")

	seat, err := app.EventAreas.CreateEventSeat(ctx, eventareas.CreateEventSeatRequest{EventAreaID: area.ID, Row: 2, Number: 1})
	require.NoError(t, err)
	assert.Equal(t, eventareas.SeatFree, seat.State)

	_, err = app.EventAreas.UpdateEventSeat(ctx, seat.ID, eventareas.UpdateEventSeatRequest{
		CreateEventSeatRequest: eventareas.CreateEventSeatRequest{Row: 3, Number: 1},
		Version:                seat.Version,
	})
	require.ErrorIs(t, err, apperr.ErrValidation, "event_area_id is required on update")
}

func TestUpdateEventSeatLeavesStateAlone(t *testing.T) {
	app, area := scheduled(t)
	ctx := context.Background()
	seat := app.SeatsOf(area.EventID)[0]

	app.Store.SeedUser(1, 100)
	_, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 15, UserID: 1})
	require.NoError(t, err)

	fresh, err := app.Store.GetEventSeatByID(ctx, seat.ID)
	require.NoError(t, err)
	seat = *fresh
	updated, err := app.EventAreas.UpdateEventSeat(ctx, seat.ID, eventareas.UpdateEventSeatRequest{
		CreateEventSeatRequest: eventareas.CreateEventSeatRequest{EventAreaID: area.ID, Row: 5, Number: 5},
		Version:                seat.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, eventareas.SeatOccupied, updated.State)
	assert.Equal(t, 5, updated.Row)
}

func TestDeleteEventSeatGuard(t *testing.T) {
	app, area := scheduled(t)
	ctx := context.Background()
	seats := app.SeatsOf(area.EventID)
	require.Len(t, seats, 2)

	app.Store.SeedUser(1, 100)
	_, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seats[0].ID, Price: 15, UserID: 1})
	require.NoError(t, err)

	err = app.EventAreas.DeleteEventSeat(ctx, seats[0].ID)
	require.ErrorIs(t, err, apperr.ErrOccupied)
	require.NoError(t, app.EventAreas.DeleteEventSeat(ctx, seats[1].ID))

	assert.Len(t, app.SeatsOf(area.EventID), 1)
	require.ErrorIs(t, app.EventAreas.DeleteEventSeat(ctx, seats[1].ID), apperr.ErrNotFound)
}

func TestEventSeatStaysWithinItsEvent(t *testing.T) {
	app, area := scheduled(t)
	ctx := context.Background()
	seat := app.SeatsOf(area.EventID)[0]

	app.Store.SeedUser(1, 100)
	_, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 15, UserID: 1})
	require.NoError(t, err)
	fresh, err := app.Store.GetEventSeatByID(ctx, seat.ID)
	require.NoError(t, err)

	event, err := app.Events.GetEvent(ctx, area.EventID)
	require.NoError(t, err)
	start, end := fixture.Window(20)
	other := app.Event(t, event.LayoutID, start, end)
	otherAreas := app.AreasOf(other.ID)
	require.Len(t, otherAreas, 1)

	_, err = app.EventAreas.UpdateEventSeat(ctx, seat.ID, eventareas.UpdateEventSeatRequest{
		CreateEventSeatRequest: eventareas.CreateEventSeatRequest{EventAreaID: otherAreas[0].ID, Row: 9, Number: 9},
		Version:                fresh.Version,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	unchanged, err := app.Store.GetEventSeatByID(ctx, seat.ID)
	require.NoError(t, err)
	assert.Equal(t, area.ID, unchanged.EventAreaID)

	balcony, err := app.EventAreas.CreateEventArea(ctx, eventareas.CreateEventAreaRequest{
		EventID: area.EventID, Description: "Balcony", CoordX: 7, CoordY: 7, Price: 15,
	})
	require.NoError(t, err)
	moved, err := app.EventAreas.UpdateEventSeat(ctx, seat.ID, eventareas.UpdateEventSeatRequest{
		CreateEventSeatRequest: eventareas.CreateEventSeatRequest{EventAreaID: balcony.ID, Row: 1, Number: 1},
		Version:                fresh.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, balcony.ID, moved.EventAreaID)
	assert.Equal(t, eventareas.SeatOccupied, moved.State)
}
