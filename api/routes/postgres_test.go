package routes_test

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"ticketeer/api/routes"
	"ticketeer/internal/areas"
	"ticketeer/internal/eventareas"
	"ticketeer/internal/events"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/tickets"
	"ticketeer/internal/users"
	"ticketeer/internal/venues"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPostgres connects to TEST_DATABASE_URL and resets the schema, skipping
// the test when no database is available.
func openPostgres(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pg, err := database.OpenPostgres(dsn, config.DatabaseConfig{MaxOpenConns: 20}, false)
	if err != nil {
		t.Skipf("postgres unreachable: %v", err)
	}

	require.NoError(t, pg.Migrator().DropTable(routes.Models()...))
	require.NoError(t, database.Migrate(pg, routes.Models()...))

	db := &database.DB{PostgreSQL: pg}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func wire(t *testing.T, db *database.DB) *routes.Services {
	t.Helper()
	cfg := &config.Config{Events: config.EventsConfig{OverlapRule: events.RuleContainment}}
	services, err := routes.NewServices(cfg, db, notifications.NoopPublisher{})
	require.NoError(t, err)
	return services
}

// oneSeatEvent builds venue, layout, one area priced 10 with one seat, and an
// event on it. It returns the event id.
func oneSeatEvent(t *testing.T, s *routes.Services) int64 {
	t.Helper()
	ctx := context.Background()

	venue, err := s.Venues.CreateVenue(ctx, venues.CreateVenueRequest{Name: "Hall", Address: "1 Main St", Description: "d"})
	require.NoError(t, err)
	layout, err := s.Venues.CreateLayout(ctx, venues.CreateLayoutRequest{VenueID: venue.ID, Name: "L", Description: "d"})
	require.NoError(t, err)
	area, err := s.Areas.CreateArea(ctx, areas.CreateAreaRequest{LayoutID: layout.ID, Description: "A", CoordX: 1, CoordY: 1, BasePrice: 10})
	require.NoError(t, err)
	_, err = s.Areas.CreateSeat(ctx, areas.CreateSeatRequest{AreaID: area.ID, Row: 1, Number: 1})
	require.NoError(t, err)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	event, err := s.Events.CreateEvent(ctx, events.CreateEventRequest{
		LayoutID: layout.ID, Name: "E", Description: "d", ImageURL: "i", TimeStart: start, TimeEnd: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	return event.ID
}

func liveSeat(t *testing.T, s *routes.Services, eventID int64) (eventareas.EventArea, eventareas.EventSeat) {
	t.Helper()
	ctx := context.Background()
	eas, err := s.EventAreas.ListEventAreas(ctx, eventID, pagination.Query{})
	require.NoError(t, err)
	require.Len(t, eas.Items, 1)
	seats, err := s.EventAreas.ListEventSeats(ctx, eas.Items[0].ID, pagination.Query{})
	require.NoError(t, err)
	require.Len(t, seats.Items, 1)
	return eas.Items[0], seats.Items[0]
}

func TestPostgresPurchaseScenario(t *testing.T) {
	db := openPostgres(t)
	s := wire(t, db)
	ctx := context.Background()

	_, err := s.Users.Register(ctx, 1, users.RegisterRequest{Email: "u@example.com", DisplayName: "U"})
	require.NoError(t, err)
	_, err = s.Users.Deposit(ctx, 1, 20)
	require.NoError(t, err)

	eventID := oneSeatEvent(t, s)
	area, seat := liveSeat(t, s, eventID)
	assert.Equal(t, 10.0, area.Price)
	assert.Equal(t, eventareas.SeatFree, seat.State)

	res, err := s.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})
	require.NoError(t, err)
	require.Equal(t, tickets.OutcomePurchased, res.Outcome)

	user, err := s.Users.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, user.Balance)
	_, seat = liveSeat(t, s, eventID)
	assert.Equal(t, eventareas.SeatOccupied, seat.State)

	err = s.EventAreas.DeleteEventArea(ctx, area.ID)
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.ErrorIs(t, err, apperr.ErrOccupied)

	require.NoError(t, s.Tickets.Cancel(ctx, res.Ticket.ID, 1))
	require.NoError(t, s.EventAreas.DeleteEventArea(ctx, area.ID))
}

func TestPostgresConcurrentBuy(t *testing.T) {
	db := openPostgres(t)
	s := wire(t, db)
	ctx := context.Background()

	const buyers = 6
	for i := int64(1); i <= buyers; i++ {
		_, err := s.Users.Register(ctx, i, users.RegisterRequest{Email: "b" + strconv.FormatInt(i, 10) + "@example.com", DisplayName: "B"})
		require.NoError(t, err)
		_, err = s.Users.Deposit(ctx, i, 100)
		require.NoError(t, err)
	}
	_, seat := liveSeat(t, s, oneSeatEvent(t, s))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := int64(1); i <= buyers; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			res, err := s.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: user})
			if err != nil && !errors.Is(err, apperr.ErrSeatUnavailable) {
				t.Errorf("buyer %d: %v", user, err)
				return
			}
			if err == nil && res.Outcome == tickets.OutcomePurchased {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, sold)
	var count int64
	require.NoError(t, db.PostgreSQL.Model(&tickets.Ticket{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
