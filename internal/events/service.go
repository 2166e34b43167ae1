package events

import (
	"context"
	"fmt"
	"strings"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/clock"
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/validation"
	"ticketeer/internal/venues"
	"ticketeer/pkg/cache"
	"ticketeer/pkg/logger"
)

// Layouts locks the layout an event is scheduled on.
type Layouts interface {
	LockLayout(ctx context.Context, id int64) (*venues.Layout, error)
}

// AreaPricing reports whether an event owns an event area priced at or below
// zero.
type AreaPricing interface {
	HasNonPositivePrice(ctx context.Context, eventID int64) (bool, error)
}

// Inventory keeps the live areas and seats of an event in step with its
// layout. Implemented by the inventory package.
type Inventory interface {
	Materialize(ctx context.Context, eventID, layoutID int64) (areas, seats int, err error)
	Rematerialize(ctx context.Context, eventID, layoutID int64) (areas, seats int, err error)
	DeleteEvent(ctx context.Context, id int64) error
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, layoutID int64, q pagination.Query) (*pagination.Result[Event], error)
	UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// Options tune the event service. Zero values pick the defaults.
type Options struct {
	Rule  SchedulingRule
	Clock clock.Clock
	Cache cache.Service
}

type service struct {
	repo      Repository
	tx        database.Transactor
	layouts   Layouts
	pricing   AreaPricing
	inventory Inventory
	rule      SchedulingRule
	clock     clock.Clock
	cache     cache.Service
	log       *logger.Logger
}

func NewService(repo Repository, tx database.Transactor, layouts Layouts, pricing AreaPricing, inventory Inventory, opts Options) Service {
	s := &service{
		repo:      repo,
		tx:        tx,
		layouts:   layouts,
		pricing:   pricing,
		inventory: inventory,
		rule:      opts.Rule,
		clock:     opts.Clock,
		cache:     opts.Cache,
		log:       logger.GetDefault(),
	}
	if s.rule == nil {
		s.rule = ContainmentRule
	}
	if s.clock == nil {
		s.clock = clock.NewSystem()
	}
	if s.cache == nil {
		s.cache = cache.NewService(nil)
	}
	return s
}

// CreateEvent validates the event, stores it and materializes its layout in
// one transaction.
func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := newEvent(req)
	event.Version = 1

	var areas, seats int
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.validate(ctx, event); err != nil {
			return err
		}
		if err := s.repo.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		var err error
		areas, seats, err = s.inventory.Materialize(ctx, event.ID, event.LayoutID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.LogEventCreated(ctx, event.ID, event.LayoutID, areas, seats)
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var event Event
	err := s.cache.GetOrSet(ctx, constants.BuildEventDetailKey(id), constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
		return s.repo.GetEventByID(ctx, id)
	}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) ListEvents(ctx context.Context, layoutID int64, q pagination.Query) (*pagination.Result[Event], error) {
	events, total, err := s.repo.ListEvents(ctx, layoutID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(events, total, q)
	return &result, nil
}

// UpdateEvent rewrites the event. Moving it to another layout replaces its
// event areas and seats, which is refused while any seat is occupied.
func (s *service) UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	event := newEvent(req.CreateEventRequest)
	event.ID = id
	event.Version = req.Version

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetEventByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.validate(ctx, event); err != nil {
			return err
		}
		if err := s.repo.UpdateEvent(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		if current.LayoutID != event.LayoutID {
			areas, seats, err := s.inventory.Rematerialize(ctx, id, event.LayoutID)
			if err != nil {
				return err
			}
			s.log.InfoContext(ctx, "Event Rematerialized",
				"event_id", id, "layout_id", event.LayoutID, "event_areas", areas, "event_seats", seats)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return s.repo.GetEventByID(ctx, id)
}

func (s *service) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.inventory.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func newEvent(req CreateEventRequest) *Event {
	return &Event{
		LayoutID:    req.LayoutID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		TimeStart:   req.TimeStart.UTC(),
		TimeEnd:     req.TimeEnd.UTC(),
	}
}

func (s *service) validate(ctx context.Context, event *Event) error {
	return validation.Run(ctx, event,
		validation.Fields[*Event]("event"),
		s.validWindow,
		s.layoutExists,
		s.noOverlap,
		s.pricedAreas,
	)
}

func (s *service) validWindow(_ context.Context, event *Event) error {
	if event.TimeStart.IsZero() || event.TimeEnd.IsZero() {
		return apperr.Invalid("event", "time_start", "must not be empty")
	}
	if !event.TimeStart.Before(event.TimeEnd) {
		return apperr.Invalid("event", "time_end", "must be after time_start")
	}
	if !event.TimeStart.After(s.clock.Now()) {
		return apperr.Invalid("event", "time_start", "must be in the future")
	}
	return nil
}

func (s *service) layoutExists(ctx context.Context, event *Event) error {
	_, err := s.layouts.LockLayout(ctx, event.LayoutID)
	return err
}

func (s *service) noOverlap(ctx context.Context, event *Event) error {
	scheduled, err := s.repo.EventsByLayout(ctx, event.LayoutID)
	if err != nil {
		return fmt.Errorf("load events on layout: %w", err)
	}
	for i := range scheduled {
		other := &scheduled[i]
		if other.ID == event.ID {
			continue
		}
		if s.rule(event, other) {
			return apperr.Invalid("event", "time_start",
				fmt.Sprintf("conflicts with event %d scheduled on the same layout", other.ID))
		}
	}
	return nil
}

// pricedAreas can only fail on update: a new event has no event areas until
// it is materialized.
func (s *service) pricedAreas(ctx context.Context, event *Event) error {
	if event.ID == 0 {
		return nil
	}
	bad, err := s.pricing.HasNonPositivePrice(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check event area prices: %w", err)
	}
	if bad {
		return apperr.Invalid("event", "", "every event area must have a price greater than 0")
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, constants.BuildEventDetailKey(id)); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", "event_id", id, "error", err)
	}
}
