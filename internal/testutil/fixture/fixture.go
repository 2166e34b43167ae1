// Package fixture wires every catalog and purchase service onto a memstore
// and offers builders for the common template shapes.
package fixture

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ticketeer/internal/areas"
	"ticketeer/internal/eventareas"
	"ticketeer/internal/events"
	"ticketeer/internal/inventory"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/clock"
	"ticketeer/internal/testutil/memstore"
	"ticketeer/internal/tickets"
	"ticketeer/internal/users"
	"ticketeer/internal/venues"

	"github.com/stretchr/testify/require"
)

// Now is the fixed time every fixture runs at.
var Now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type App struct {
	Store     *memstore.Store
	Clock     clock.Clock
	Inventory *inventory.Manager

	Venues     venues.Service
	Areas      areas.Service
	Events     events.Service
	EventAreas eventareas.Service
	Users      users.Service
	Tickets    tickets.Service

	seq atomic.Int64
}

type config struct {
	rule      events.SchedulingRule
	publisher notifications.Publisher
}

type Option func(*config)

func WithRule(rule events.SchedulingRule) Option {
	return func(c *config) { c.rule = rule }
}

func WithPublisher(p notifications.Publisher) Option {
	return func(c *config) { c.publisher = p }
}

func New(opts ...Option) *App {
	cfg := config{rule: events.ContainmentRule}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := memstore.New()
	clk := clock.NewFixed(Now)
	manager := inventory.NewManager(store, inventory.Repositories{
		Venues:     store,
		Areas:      store,
		Events:     store,
		EventAreas: store,
	})

	return &App{
		Store:      store,
		Clock:      clk,
		Inventory:  manager,
		Venues:     venues.NewService(store, manager, nil),
		Areas:      areas.NewService(store, store, manager),
		Events:     events.NewService(store, store, store, store, manager, events.Options{Rule: cfg.rule, Clock: clk}),
		EventAreas: eventareas.NewService(store, store, store, manager),
		Users:      users.NewService(store),
		Tickets:    tickets.NewService(store, store, store, store, notifications.NewNotifier(cfg.publisher, clk)),
	}
}

// Layout creates a fresh venue with one layout.
func (a *App) Layout(t testing.TB) *venues.Layout {
	t.Helper()
	n := a.seq.Add(1)
	ctx := context.Background()

	venue, err := a.Venues.CreateVenue(ctx, venues.CreateVenueRequest{
		Name:        fmt.Sprintf("Venue %d", n),
		Address:     "1 Main St",
		Description: "A venue",
	})
	require.NoError(t, err)

	layout, err := a.Venues.CreateLayout(ctx, venues.CreateLayoutRequest{
		VenueID:     venue.ID,
		Name:        "Main",
		Description: "Main layout",
	})
	require.NoError(t, err)
	return layout
}

// Area creates an area on the layout with rows*perRow seats.
func (a *App) Area(t testing.TB, layoutID int64, x, y int, price float64, rows, perRow int) *areas.Area {
	t.Helper()
	ctx := context.Background()

	area, err := a.Areas.CreateArea(ctx, areas.CreateAreaRequest{
		LayoutID:    layoutID,
		Description: fmt.Sprintf("Area %d-%d", x, y),
		CoordX:      x,
		CoordY:      y,
		BasePrice:   price,
	})
	require.NoError(t, err)

	for r := 1; r <= rows; r++ {
		for n := 1; n <= perRow; n++ {
			_, err := a.Areas.CreateSeat(ctx, areas.CreateSeatRequest{AreaID: area.ID, Row: r, Number: n})
			require.NoError(t, err)
		}
	}
	return area
}

// Event schedules an event on the layout.
func (a *App) Event(t testing.TB, layoutID int64, start, end time.Time) *events.Event {
	t.Helper()
	event, err := a.Events.CreateEvent(context.Background(), EventRequest(layoutID, start, end))
	require.NoError(t, err)
	return event
}

// EventRequest is a valid create request for the window.
func EventRequest(layoutID int64, start, end time.Time) events.CreateEventRequest {
	return events.CreateEventRequest{
		LayoutID:    layoutID,
		Name:        "Concert",
		Description: "An evening concert",
		ImageURL:    "https://img.example.com/concert.png",
		TimeStart:   start,
		TimeEnd:     end,
	}
}

// Window returns a two hour window starting the given number of days after Now.
func Window(days int) (time.Time, time.Time) {
	start := Now.AddDate(0, 0, days)
	return start, start.Add(2 * time.Hour)
}

// SeatsOf returns the event seats materialized for an event.
func (a *App) SeatsOf(eventID int64) []eventareas.EventSeat {
	areaIDs := map[int64]bool{}
	for _, ea := range a.Store.EventAreas() {
		if ea.EventID == eventID {
			areaIDs[ea.ID] = true
		}
	}
	var out []eventareas.EventSeat
	for _, s := range a.Store.EventSeats() {
		if areaIDs[s.EventAreaID] {
			out = append(out, s)
		}
	}
	return out
}

// AreasOf returns the event areas materialized for an event.
func (a *App) AreasOf(eventID int64) []eventareas.EventArea {
	var out []eventareas.EventArea
	for _, ea := range a.Store.EventAreas() {
		if ea.EventID == eventID {
			out = append(out, ea)
		}
	}
	return out
}
