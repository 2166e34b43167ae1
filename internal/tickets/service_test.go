package tickets_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ticketeer/internal/eventareas"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/testutil/fixture"
	"ticketeer/internal/tickets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*notifications.TicketEvent
	err    error
}

func (p *recordingPublisher) PublishTicketEvent(_ context.Context, e *notifications.TicketEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// singleSeatEvent builds a layout with one area priced 10 holding one seat,
// schedules an event on it and returns the live seat.
func singleSeatEvent(t *testing.T, app *fixture.App) eventareas.EventSeat {
	t.Helper()
	layout := app.Layout(t)
	app.Area(t, layout.ID, 1, 1, 10, 1, 1)
	start, end := fixture.Window(30)
	event := app.Event(t, layout.ID, start, end)

	seats := app.SeatsOf(event.ID)
	require.Len(t, seats, 1)
	return seats[0]
}

func TestPurchaseScenario(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	const user = int64(7)
	app.Store.SeedUser(user, 20)

	seat := singleSeatEvent(t, app)
	areas := app.Store.EventAreas()
	require.Len(t, areas, 1)
	assert.Equal(t, 10.0, areas[0].Price)
	assert.Equal(t, eventareas.SeatFree, seat.State)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: user})
	require.NoError(t, err)
	require.Equal(t, tickets.OutcomePurchased, res.Outcome)
	assert.Equal(t, 10.0, res.Balance)

	balance, err := app.Store.GetBalance(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)
	assert.Equal(t, eventareas.SeatOccupied, app.Store.EventSeats()[0].State)
	assert.Len(t, app.Store.Tickets(), 1)

	err = app.EventAreas.DeleteEventArea(ctx, areas[0].ID)
	require.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, app.Tickets.Cancel(ctx, res.Ticket.ID, user))
	assert.Equal(t, eventareas.SeatFree, app.Store.EventSeats()[0].State)

	require.NoError(t, app.EventAreas.DeleteEventArea(ctx, areas[0].ID))
	assert.Empty(t, app.Store.EventAreas())
	assert.Empty(t, app.Store.EventSeats())
}

func TestConcurrentBuyersGetOneSeat(t *testing.T) {
	app := fixture.New()
	seat := singleSeatEvent(t, app)

	const buyers = 8
	for i := int64(1); i <= buyers; i++ {
		app.Store.SeedUser(i, 100)
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		won         int
		unavailable int
	)
	for i := int64(1); i <= buyers; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			res, err := app.Tickets.Buy(context.Background(), tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: user})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && res.Outcome == tickets.OutcomePurchased:
				won++
			case errors.Is(err, apperr.ErrSeatUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected result %v, %v", res, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, won)
	assert.Equal(t, buyers-1, unavailable)
	require.Len(t, app.Store.Tickets(), 1)

	var total float64
	for i := int64(1); i <= buyers; i++ {
		b, err := app.Store.GetBalance(context.Background(), i)
		require.NoError(t, err)
		total += b
	}
	assert.Equal(t, float64(buyers*100-10), total)
}

func TestBuyThenCancelRestoresSeat(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	app.Store.SeedUser(1, 50)
	seat := singleSeatEvent(t, app)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})
	require.NoError(t, err)
	require.NoError(t, app.Tickets.Cancel(ctx, res.Ticket.ID, 1))

	assert.Equal(t, eventareas.SeatFree, app.Store.EventSeats()[0].State)
	assert.Empty(t, app.Store.Tickets())
	balance, err := app.Store.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)
}

func TestOccupancyMatchesTickets(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	layout := app.Layout(t)
	app.Area(t, layout.ID, 1, 1, 5, 2, 5)
	start, end := fixture.Window(30)
	event := app.Event(t, layout.ID, start, end)
	app.Store.SeedUser(1, 1000)

	var bought []int64
	for i, s := range app.SeatsOf(event.ID) {
		if i%3 != 0 {
			continue
		}
		res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: s.ID, Price: 5, UserID: 1})
		require.NoError(t, err)
		bought = append(bought, res.Ticket.ID)
	}
	require.NoError(t, app.Tickets.Cancel(ctx, bought[0], 1))

	ticketsBySeat := map[int64]int{}
	for _, tk := range app.Store.Tickets() {
		ticketsBySeat[tk.EventSeatID]++
	}
	for _, s := range app.SeatsOf(event.ID) {
		if s.State == eventareas.SeatOccupied {
			assert.Equal(t, 1, ticketsBySeat[s.ID], "seat %d", s.ID)
		} else {
			assert.Zero(t, ticketsBySeat[s.ID], "seat %d", s.ID)
		}
	}
}

func TestBuyWithShortBalanceIsAnOutcome(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	app.Store.SeedUser(1, 4)
	seat := singleSeatEvent(t, app)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, tickets.OutcomeInsufficientFunds, res.Outcome)
	assert.Nil(t, res.Ticket)
	assert.Equal(t, 4.0, res.Balance)
	assert.Equal(t, eventareas.SeatFree, app.Store.EventSeats()[0].State)
	assert.Empty(t, app.Store.Tickets())
}

func TestBuyRejections(t *testing.T) {
	app := fixture.New()
	app.Store.SeedUser(1, 100)
	seat := singleSeatEvent(t, app)

	tests := []struct {
		name string
		req  tickets.BuyRequest
		want error
	}{
		{"zero price", tickets.BuyRequest{EventSeatID: seat.ID, Price: 0, UserID: 1}, apperr.ErrValidation},
		{"stale price", tickets.BuyRequest{EventSeatID: seat.ID, Price: 8, UserID: 1}, apperr.ErrValidation},
		{"missing seat", tickets.BuyRequest{EventSeatID: 999, Price: 10, UserID: 1}, apperr.ErrNotFound},
		{"unknown user", tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 2}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Tickets.Buy(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, app.Store.Tickets())
}

func TestBuyRejectsUnpricedArea(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	app.Store.SeedUser(1, 100)
	start, end := fixture.Window(30)
	event := app.Event(t, app.Layout(t).ID, start, end)

	// an event area priced at zero can only appear through storage
	area := eventareas.EventArea{EventID: event.ID, Description: "Free", CoordX: 1, CoordY: 1, Price: 0, Version: 1}
	require.NoError(t, app.Store.CreateEventArea(ctx, &area))
	seat := eventareas.EventSeat{EventAreaID: area.ID, Row: 1, Number: 1, State: eventareas.SeatFree, Version: 1}
	require.NoError(t, app.Store.CreateEventSeat(ctx, &seat))

	_, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 1, UserID: 1})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCancelOnFreeSeatIsInconsistent(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	app.Store.SeedUser(1, 100)
	seat := singleSeatEvent(t, app)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})
	require.NoError(t, err)

	// corrupt the pair behind the service's back
	ok, err := app.Store.SetEventSeatState(ctx, seat.ID, eventareas.SeatOccupied, eventareas.SeatFree)
	require.NoError(t, err)
	require.True(t, ok)

	err = app.Tickets.Cancel(ctx, res.Ticket.ID, 1)
	require.ErrorIs(t, err, apperr.ErrInconsistentState)
	assert.Len(t, app.Store.Tickets(), 1)
}

func TestCancelOtherUsersTicketIsNotFound(t *testing.T) {
	app := fixture.New()
	ctx := context.Background()
	app.Store.SeedUser(1, 100)
	seat := singleSeatEvent(t, app)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})
	require.NoError(t, err)

	require.ErrorIs(t, app.Tickets.Cancel(ctx, res.Ticket.ID, 2), apperr.ErrNotFound)
	_, err = app.Tickets.GetTicket(ctx, res.Ticket.ID, 2)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	mine, err := app.Tickets.ListUserTickets(ctx, 1, pagination.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.TotalCount)
}

func TestPublishesAfterCommit(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	app := fixture.New(fixture.WithPublisher(pub))
	ctx := context.Background()
	app.Store.SeedUser(1, 100)
	seat := singleSeatEvent(t, app)

	res, err := app.Tickets.Buy(ctx, tickets.BuyRequest{EventSeatID: seat.ID, Price: 10, UserID: 1})
	require.NoError(t, err, "publish failures must not fail the purchase")
	require.NoError(t, app.Tickets.Cancel(ctx, res.Ticket.ID, 1))

	require.Len(t, pub.events, 2)
	assert.Equal(t, notifications.TicketEventPurchased, pub.events[0].Type)
	assert.Equal(t, notifications.TicketEventCancelled, pub.events[1].Type)
	assert.Equal(t, res.Ticket.Reference, pub.events[1].TicketReference)
	assert.Equal(t, int64(1), pub.events[0].UserID)
}
