package eventareas

import (
	"context"
	"fmt"
	"strings"

	"ticketeer/internal/events"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/validation"
)

// Events resolves the event an event area belongs to.
type Events interface {
	GetEventByID(ctx context.Context, id int64) (*events.Event, error)
}

// Cascader removes an event area together with its seats once no seat is
// occupied.
type Cascader interface {
	DeleteEventArea(ctx context.Context, id int64) error
}

type Service interface {
	CreateEventArea(ctx context.Context, req CreateEventAreaRequest) (*EventArea, error)
	GetEventArea(ctx context.Context, id int64) (*EventArea, error)
	ListEventAreas(ctx context.Context, eventID int64, q pagination.Query) (*pagination.Result[EventArea], error)
	UpdateEventArea(ctx context.Context, id int64, req UpdateEventAreaRequest) (*EventArea, error)
	DeleteEventArea(ctx context.Context, id int64) error

	CreateEventSeat(ctx context.Context, req CreateEventSeatRequest) (*EventSeat, error)
	GetEventSeat(ctx context.Context, id int64) (*EventSeat, error)
	ListEventSeats(ctx context.Context, eventAreaID int64, q pagination.Query) (*pagination.Result[EventSeat], error)
	UpdateEventSeat(ctx context.Context, id int64, req UpdateEventSeatRequest) (*EventSeat, error)
	DeleteEventSeat(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	tx       database.Transactor
	events   Events
	cascader Cascader
}

func NewService(repo Repository, tx database.Transactor, events Events, cascader Cascader) Service {
	return &service{repo: repo, tx: tx, events: events, cascader: cascader}
}

// ============= EVENT AREAS =============

// CreateEventArea adds an area that has no layout counterpart. It starts
// without seats.
func (s *service) CreateEventArea(ctx context.Context, req CreateEventAreaRequest) (*EventArea, error) {
	area := &EventArea{
		EventID:     req.EventID,
		Description: strings.TrimSpace(req.Description),
		CoordX:      req.CoordX,
		CoordY:      req.CoordY,
		Price:       req.Price,
		Version:     1,
	}
	err := validation.Run(ctx, area,
		validation.Fields[*EventArea]("event area"),
		s.eventExists,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateEventArea(ctx, area); err != nil {
		return nil, fmt.Errorf("create event area: %w", err)
	}
	return area, nil
}

func (s *service) GetEventArea(ctx context.Context, id int64) (*EventArea, error) {
	return s.repo.GetEventAreaByID(ctx, id)
}

func (s *service) ListEventAreas(ctx context.Context, eventID int64, q pagination.Query) (*pagination.Result[EventArea], error) {
	areas, total, err := s.repo.ListEventAreas(ctx, eventID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(areas, total, q)
	return &result, nil
}

// UpdateEventArea edits the live copy only. The event it belongs to never
// changes.
func (s *service) UpdateEventArea(ctx context.Context, id int64, req UpdateEventAreaRequest) (*EventArea, error) {
	current, err := s.repo.GetEventAreaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	area := &EventArea{
		ID:          id,
		EventID:     current.EventID,
		Description: strings.TrimSpace(req.Description),
		CoordX:      req.CoordX,
		CoordY:      req.CoordY,
		Price:       req.Price,
		Version:     req.Version,
	}
	if err := validation.Struct("event area", area); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEventArea(ctx, area); err != nil {
		return nil, fmt.Errorf("update event area: %w", err)
	}
	return s.repo.GetEventAreaByID(ctx, id)
}

func (s *service) DeleteEventArea(ctx context.Context, id int64) error {
	return s.cascader.DeleteEventArea(ctx, id)
}

func (s *service) eventExists(ctx context.Context, area *EventArea) error {
	_, err := s.events.GetEventByID(ctx, area.EventID)
	return err
}

// ============= EVENT SEATS =============

// CreateEventSeat adds a free seat to an event area.
func (s *service) CreateEventSeat(ctx context.Context, req CreateEventSeatRequest) (*EventSeat, error) {
	seat := &EventSeat{
		EventAreaID: req.EventAreaID,
		Row:         req.Row,
		Number:      req.Number,
		State:       SeatFree,
		Version:     1,
	}
	if err := s.validateSeat(ctx, seat); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEventSeat(ctx, seat); err != nil {
		return nil, fmt.Errorf("create event seat: %w", err)
	}
	return seat, nil
}

func (s *service) GetEventSeat(ctx context.Context, id int64) (*EventSeat, error) {
	return s.repo.GetEventSeatByID(ctx, id)
}

func (s *service) ListEventSeats(ctx context.Context, eventAreaID int64, q pagination.Query) (*pagination.Result[EventSeat], error) {
	seats, total, err := s.repo.ListEventSeats(ctx, eventAreaID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(seats, total, q)
	return &result, nil
}

// UpdateEventSeat moves or renumbers a seat. Its state is owned by the
// purchase flow and is never written here.
func (s *service) UpdateEventSeat(ctx context.Context, id int64, req UpdateEventSeatRequest) (*EventSeat, error) {
	seat := &EventSeat{
		ID:          id,
		EventAreaID: req.EventAreaID,
		Row:         req.Row,
		Number:      req.Number,
		Version:     req.Version,
	}
	if seat.EventAreaID <= 0 {
		return nil, apperr.Invalid("event seat", "event_area_id", "must be greater than 0")
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.LockEventSeat(ctx, id)
		if err != nil {
			return err
		}
		if err := s.validateSeat(ctx, seat); err != nil {
			return err
		}
		if current.EventAreaID != seat.EventAreaID {
			if err := s.sameEvent(ctx, current.EventAreaID, seat.EventAreaID); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateEventSeat(ctx, seat); err != nil {
			return fmt.Errorf("update event seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetEventSeatByID(ctx, id)
}

// sameEvent keeps a seat, and any ticket pointing at it, inside the event
// it was materialized for.
func (s *service) sameEvent(ctx context.Context, fromAreaID, toAreaID int64) error {
	from, err := s.repo.GetEventAreaByID(ctx, fromAreaID)
	if err != nil {
		return err
	}
	to, err := s.repo.GetEventAreaByID(ctx, toAreaID)
	if err != nil {
		return err
	}
	if from.EventID != to.EventID {
		return apperr.Invalid("event seat", "event_area_id", "must belong to the same event")
	}
	return nil
}

// DeleteEventSeat removes a seat that nobody holds a ticket for.
func (s *service) DeleteEventSeat(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		seat, err := s.repo.LockEventSeat(ctx, id)
		if err != nil {
			return err
		}
		if seat.State == SeatOccupied {
			return apperr.Occupied("event seat", id, 1)
		}
		return s.repo.DeleteEventSeat(ctx, id)
	})
}

func (s *service) validateSeat(ctx context.Context, seat *EventSeat) error {
	return validation.Run(ctx, seat,
		validation.Fields[*EventSeat]("event seat"),
		s.seatAreaExists,
		s.uniqueSeatPosition,
	)
}

func (s *service) seatAreaExists(ctx context.Context, seat *EventSeat) error {
	_, err := s.repo.GetEventAreaByID(ctx, seat.EventAreaID)
	return err
}

func (s *service) uniqueSeatPosition(ctx context.Context, seat *EventSeat) error {
	taken, err := s.repo.EventSeatPositionExists(ctx, seat.EventAreaID, seat.Row, seat.Number, seat.ID)
	if err != nil {
		return fmt.Errorf("check event seat position: %w", err)
	}
	if taken {
		return apperr.Invalid("event seat", "number", "row and number must be unique within the event area")
	}
	return nil
}
