package memstore

import (
	"context"
	"slices"
	"strconv"

	"ticketeer/internal/eventareas"
	"ticketeer/internal/events"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/tickets"
	"ticketeer/internal/users"
)

// ============= EVENTS =============

func (s *Store) CreateEvent(ctx context.Context, event *events.Event) error {
	return s.do(ctx, "CreateEvent", func(st *state) error {
		event.ID = s.id()
		event.CreatedAt, event.UpdatedAt = s.now(), s.now()
		st.events[event.ID] = *event
		return nil
	})
}

func (s *Store) GetEventByID(ctx context.Context, id int64) (*events.Event, error) {
	var out events.Event
	err := s.do(ctx, "GetEventByID", func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return apperr.NotFound("event", id)
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListEvents(ctx context.Context, layoutID int64, q pagination.Query) ([]events.Event, int64, error) {
	var all []events.Event
	_ = s.do(ctx, "ListEvents", func(st *state) error {
		all = rows(st.events, func(e *events.Event) bool { return layoutID == 0 || e.LayoutID == layoutID })
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateEvent(ctx context.Context, event *events.Event) error {
	return s.do(ctx, "UpdateEvent", func(st *state) error {
		cur, ok := st.events[event.ID]
		if err := checkVersion("event", event.ID, ok, cur.Version, event.Version); err != nil {
			return err
		}
		cur.LayoutID, cur.Name, cur.Description, cur.ImageURL = event.LayoutID, event.Name, event.Description, event.ImageURL
		cur.TimeStart, cur.TimeEnd = event.TimeStart, event.TimeEnd
		cur.Version++
		cur.UpdatedAt = s.now()
		st.events[event.ID] = cur
		event.Version = cur.Version
		return nil
	})
}

func (s *Store) EventsByLayout(ctx context.Context, layoutID int64) ([]events.Event, error) {
	var out []events.Event
	err := s.do(ctx, "EventsByLayout", func(st *state) error {
		out = rows(st.events, func(e *events.Event) bool { return e.LayoutID == layoutID })
		slices.SortStableFunc(out, func(a, b events.Event) int { return a.TimeStart.Compare(b.TimeStart) })
		return nil
	})
	return out, err
}

func (s *Store) EventIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error) {
	var ids []int64
	err := s.do(ctx, "EventIDsByLayouts", func(st *state) error {
		for _, e := range rows(st.events, func(e *events.Event) bool { return slices.Contains(layoutIDs, e.LayoutID) }) {
			ids = append(ids, e.ID)
		}
		return nil
	})
	return ids, err
}

func (s *Store) DeleteEvents(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteEvents", func(st *state) error {
		n = deleteIDs(st.events, ids)
		return nil
	})
	return n, err
}

// ============= EVENT AREAS =============

func (s *Store) CreateEventArea(ctx context.Context, area *eventareas.EventArea) error {
	return s.do(ctx, "CreateEventArea", func(st *state) error {
		area.ID = s.id()
		area.CreatedAt, area.UpdatedAt = s.now(), s.now()
		st.eventAreas[area.ID] = *area
		return nil
	})
}

func (s *Store) CreateEventAreas(ctx context.Context, list []eventareas.EventArea) error {
	return s.do(ctx, "CreateEventAreas", func(st *state) error {
		for i := range list {
			list[i].ID = s.id()
			list[i].CreatedAt, list[i].UpdatedAt = s.now(), s.now()
			st.eventAreas[list[i].ID] = list[i]
		}
		return nil
	})
}

func (s *Store) GetEventAreaByID(ctx context.Context, id int64) (*eventareas.EventArea, error) {
	var out eventareas.EventArea
	err := s.do(ctx, "GetEventAreaByID", func(st *state) error {
		a, ok := st.eventAreas[id]
		if !ok {
			return apperr.NotFound("event area", id)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListEventAreas(ctx context.Context, eventID int64, q pagination.Query) ([]eventareas.EventArea, int64, error) {
	var all []eventareas.EventArea
	_ = s.do(ctx, "ListEventAreas", func(st *state) error {
		all = rows(st.eventAreas, func(a *eventareas.EventArea) bool { return eventID == 0 || a.EventID == eventID })
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateEventArea(ctx context.Context, area *eventareas.EventArea) error {
	return s.do(ctx, "UpdateEventArea", func(st *state) error {
		cur, ok := st.eventAreas[area.ID]
		if err := checkVersion("event area", area.ID, ok, cur.Version, area.Version); err != nil {
			return err
		}
		cur.Description, cur.CoordX, cur.CoordY, cur.Price = area.Description, area.CoordX, area.CoordY, area.Price
		cur.Version++
		cur.UpdatedAt = s.now()
		st.eventAreas[area.ID] = cur
		area.Version = cur.Version
		return nil
	})
}

func (s *Store) HasNonPositivePrice(ctx context.Context, eventID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "HasNonPositivePrice", func(st *state) error {
		found = len(rows(st.eventAreas, func(a *eventareas.EventArea) bool {
			return a.EventID == eventID && a.Price <= 0
		})) > 0
		return nil
	})
	return found, err
}

func (s *Store) EventAreaIDsByEvents(ctx context.Context, eventIDs []int64) ([]int64, error) {
	var ids []int64
	err := s.do(ctx, "EventAreaIDsByEvents", func(st *state) error {
		for _, a := range rows(st.eventAreas, func(a *eventareas.EventArea) bool { return slices.Contains(eventIDs, a.EventID) }) {
			ids = append(ids, a.ID)
		}
		return nil
	})
	return ids, err
}

func (s *Store) DeleteEventAreas(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteEventAreas", func(st *state) error {
		n = deleteIDs(st.eventAreas, ids)
		return nil
	})
	return n, err
}

// ============= EVENT SEATS =============

func eventSeatClash(st *state, seat *eventareas.EventSeat) bool {
	for _, o := range st.eventSeats {
		if o.ID != seat.ID && o.EventAreaID == seat.EventAreaID && o.Row == seat.Row && o.Number == seat.Number {
			return true
		}
	}
	return false
}

func (s *Store) CreateEventSeat(ctx context.Context, seat *eventareas.EventSeat) error {
	return s.do(ctx, "CreateEventSeat", func(st *state) error {
		if eventSeatClash(st, seat) {
			return duplicate("event seat")
		}
		seat.ID = s.id()
		seat.CreatedAt, seat.UpdatedAt = s.now(), s.now()
		st.eventSeats[seat.ID] = *seat
		return nil
	})
}

func (s *Store) CreateEventSeats(ctx context.Context, list []eventareas.EventSeat) error {
	return s.do(ctx, "CreateEventSeats", func(st *state) error {
		for i := range list {
			if eventSeatClash(st, &list[i]) {
				return duplicate("event seat")
			}
			list[i].ID = s.id()
			list[i].CreatedAt, list[i].UpdatedAt = s.now(), s.now()
			st.eventSeats[list[i].ID] = list[i]
		}
		return nil
	})
}

func (s *Store) GetEventSeatByID(ctx context.Context, id int64) (*eventareas.EventSeat, error) {
	var out eventareas.EventSeat
	err := s.do(ctx, "GetEventSeatByID", func(st *state) error {
		seat, ok := st.eventSeats[id]
		if !ok {
			return apperr.NotFound("event seat", id)
		}
		out = seat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LockEventSeat is a plain read: holding the store lock is the row lock.
func (s *Store) LockEventSeat(ctx context.Context, id int64) (*eventareas.EventSeat, error) {
	return s.GetEventSeatByID(ctx, id)
}

func (s *Store) ListEventSeats(ctx context.Context, eventAreaID int64, q pagination.Query) ([]eventareas.EventSeat, int64, error) {
	var all []eventareas.EventSeat
	_ = s.do(ctx, "ListEventSeats", func(st *state) error {
		all = rows(st.eventSeats, func(seat *eventareas.EventSeat) bool {
			return eventAreaID == 0 || seat.EventAreaID == eventAreaID
		})
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateEventSeat(ctx context.Context, seat *eventareas.EventSeat) error {
	return s.do(ctx, "UpdateEventSeat", func(st *state) error {
		cur, ok := st.eventSeats[seat.ID]
		if err := checkVersion("event seat", seat.ID, ok, cur.Version, seat.Version); err != nil {
			return err
		}
		if eventSeatClash(st, seat) {
			return duplicate("event seat")
		}
		cur.EventAreaID, cur.Row, cur.Number = seat.EventAreaID, seat.Row, seat.Number
		cur.Version++
		cur.UpdatedAt = s.now()
		st.eventSeats[seat.ID] = cur
		seat.Version = cur.Version
		return nil
	})
}

func (s *Store) EventSeatPositionExists(ctx context.Context, eventAreaID int64, row, number int, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "EventSeatPositionExists", func(st *state) error {
		found = eventSeatClash(st, &eventareas.EventSeat{ID: excludeID, EventAreaID: eventAreaID, Row: row, Number: number})
		return nil
	})
	return found, err
}

func (s *Store) SetEventSeatState(ctx context.Context, id int64, from, to eventareas.SeatState) (bool, error) {
	var moved bool
	err := s.do(ctx, "SetEventSeatState", func(st *state) error {
		seat, ok := st.eventSeats[id]
		if !ok || seat.State != from {
			return nil
		}
		seat.State = to
		seat.Version++
		seat.UpdatedAt = s.now()
		st.eventSeats[id] = seat
		moved = true
		return nil
	})
	return moved, err
}

func (s *Store) LockOccupiedCount(ctx context.Context, eventAreaIDs []int64) (int, error) {
	var n int
	err := s.do(ctx, "LockOccupiedCount", func(st *state) error {
		for _, seat := range st.eventSeats {
			if slices.Contains(eventAreaIDs, seat.EventAreaID) && seat.State == eventareas.SeatOccupied {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) DeleteEventSeat(ctx context.Context, id int64) error {
	return s.do(ctx, "DeleteEventSeat", func(st *state) error {
		if deleteIDs(st.eventSeats, []int64{id}) == 0 {
			return apperr.NotFound("event seat", id)
		}
		return nil
	})
}

func (s *Store) DeleteEventSeatsByAreas(ctx context.Context, eventAreaIDs []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteEventSeatsByAreas", func(st *state) error {
		for id, seat := range st.eventSeats {
			if slices.Contains(eventAreaIDs, seat.EventAreaID) {
				delete(st.eventSeats, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

// ============= USERS =============

func (s *Store) CreateUser(ctx context.Context, user *users.User) error {
	return s.do(ctx, "CreateUser", func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return duplicate("user")
		}
		for _, u := range st.users {
			if u.Email == user.Email {
				return duplicate("user")
			}
		}
		user.CreatedAt, user.UpdatedAt = s.now(), s.now()
		st.users[user.ID] = *user
		return nil
	})
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*users.User, error) {
	var out users.User
	err := s.do(ctx, "GetUserByID", func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return apperr.NotFound("user", id)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetBalance(ctx context.Context, userID int64) (float64, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.Balance, nil
}

func (s *Store) Debit(ctx context.Context, userID int64, amount float64) error {
	return s.do(ctx, "Debit", func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return apperr.NotFound("user", userID)
		}
		if u.Balance < amount {
			return apperr.ErrInsufficientFunds
		}
		u.Balance -= amount
		u.Version++
		st.users[userID] = u
		return nil
	})
}

func (s *Store) Credit(ctx context.Context, userID int64, amount float64) error {
	return s.do(ctx, "Credit", func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return apperr.NotFound("user", userID)
		}
		u.Balance += amount
		u.Version++
		st.users[userID] = u
		return nil
	})
}

// ============= TICKETS =============

func (s *Store) CreateTicket(ctx context.Context, ticket *tickets.Ticket) error {
	return s.do(ctx, "CreateTicket", func(st *state) error {
		for _, t := range st.tickets {
			if t.EventSeatID == ticket.EventSeatID || t.Reference == ticket.Reference {
				return duplicate("ticket")
			}
		}
		ticket.ID = s.id()
		ticket.CreatedAt = s.now()
		st.tickets[ticket.ID] = *ticket
		return nil
	})
}

func (s *Store) GetTicketByID(ctx context.Context, id int64) (*tickets.Ticket, error) {
	var out tickets.Ticket
	err := s.do(ctx, "GetTicketByID", func(st *state) error {
		t, ok := st.tickets[id]
		if !ok {
			return apperr.NotFound("ticket", id)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) LockTicket(ctx context.Context, id int64) (*tickets.Ticket, error) {
	return s.GetTicketByID(ctx, id)
}

func (s *Store) ListTicketsByUser(ctx context.Context, userID int64, q pagination.Query) ([]tickets.Ticket, int64, error) {
	var all []tickets.Ticket
	_ = s.do(ctx, "ListTicketsByUser", func(st *state) error {
		all = rows(st.tickets, func(t *tickets.Ticket) bool { return t.UserID == userID })
		return nil
	})
	return page(all, q)
}

func (s *Store) DeleteTicket(ctx context.Context, id int64) error {
	return s.do(ctx, "DeleteTicket", func(st *state) error {
		if deleteIDs(st.tickets, []int64{id}) == 0 {
			return apperr.NotFound("ticket", id)
		}
		return nil
	})
}

// ============= INSPECTION =============

// Counts reports the number of rows per table.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"venues":      len(s.data.venues),
		"layouts":     len(s.data.layouts),
		"areas":       len(s.data.areas),
		"seats":       len(s.data.seats),
		"events":      len(s.data.events),
		"event_areas": len(s.data.eventAreas),
		"event_seats": len(s.data.eventSeats),
		"users":       len(s.data.users),
		"tickets":     len(s.data.tickets),
	}
}

// EventSeats returns every event seat, ordered by id.
func (s *Store) EventSeats() []eventareas.EventSeat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rows(s.data.eventSeats, nil)
}

// EventAreas returns every event area, ordered by id.
func (s *Store) EventAreas() []eventareas.EventArea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rows(s.data.eventAreas, nil)
}

// Tickets returns every ticket, ordered by id.
func (s *Store) Tickets() []tickets.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rows(s.data.tickets, nil)
}

// SeedUser stores a ledger row directly.
func (s *Store) SeedUser(id int64, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[id] = users.User{
		ID:          id,
		Email:       "user" + strconv.FormatInt(id, 10) + "@example.com",
		DisplayName: "User",
		TimeZone:    "UTC",
		Balance:     balance,
		Version:     1,
	}
}
