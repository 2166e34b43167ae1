package venues

import (
	"context"
	"fmt"
	"strings"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/validation"
	"ticketeer/pkg/cache"
	"ticketeer/pkg/logger"
)

// Cascader removes a venue or layout together with everything it owns.
// Implemented by the inventory package.
type Cascader interface {
	DeleteVenue(ctx context.Context, id int64) error
	DeleteLayout(ctx context.Context, id int64) error
}

type Service interface {
	// Venues
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	GetVenue(ctx context.Context, id int64) (*Venue, error)
	ListVenues(ctx context.Context, q pagination.Query) (*pagination.Result[Venue], error)
	UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error)
	DeleteVenue(ctx context.Context, id int64) error

	// Layouts
	CreateLayout(ctx context.Context, req CreateLayoutRequest) (*Layout, error)
	GetLayout(ctx context.Context, id int64) (*Layout, error)
	ListLayouts(ctx context.Context, venueID int64, q pagination.Query) (*pagination.Result[Layout], error)
	UpdateLayout(ctx context.Context, id int64, req UpdateLayoutRequest) (*Layout, error)
	DeleteLayout(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	cascader Cascader
	cache    cache.Service
	log      *logger.Logger
}

func NewService(repo Repository, cascader Cascader, cacheService cache.Service) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	return &service{
		repo:     repo,
		cascader: cascader,
		cache:    cacheService,
		log:      logger.GetDefault(),
	}
}

// ============= VENUES =============

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	venue := &Venue{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Phone:       strings.TrimSpace(req.Phone),
		Description: strings.TrimSpace(req.Description),
		Version:     1,
	}
	if err := validation.Run(ctx, venue, validation.Fields[*Venue]("venue"), s.uniqueVenueName); err != nil {
		return nil, err
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *service) GetVenue(ctx context.Context, id int64) (*Venue, error) {
	var venue Venue
	err := s.cache.GetOrSet(ctx, constants.BuildVenueDetailKey(id), constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		return s.repo.GetVenueByID(ctx, id)
	}, &venue)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (s *service) ListVenues(ctx context.Context, q pagination.Query) (*pagination.Result[Venue], error) {
	venues, total, err := s.repo.ListVenues(ctx, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(venues, total, q)
	return &result, nil
}

func (s *service) UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	venue := &Venue{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Phone:       strings.TrimSpace(req.Phone),
		Description: strings.TrimSpace(req.Description),
		Version:     req.Version,
	}
	if err := validation.Run(ctx, venue, validation.Fields[*Venue]("venue"), s.uniqueVenueName); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	s.invalidate(ctx, constants.BuildVenueDetailKey(id))

	return s.repo.GetVenueByID(ctx, id)
}

func (s *service) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.cascader.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.invalidatePattern(ctx, constants.PATTERN_INVALIDATE_VENUES_ALL)
	s.invalidatePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL)
	return nil
}

func (s *service) uniqueVenueName(ctx context.Context, venue *Venue) error {
	taken, err := s.repo.VenueNameExists(ctx, venue.Name, venue.ID)
	if err != nil {
		return fmt.Errorf("check venue name: %w", err)
	}
	if taken {
		return apperr.Invalid("venue", "name", "must be unique")
	}
	return nil
}

// ============= LAYOUTS =============

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest) (*Layout, error) {
	layout := &Layout{
		VenueID:     req.VenueID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Version:     1,
	}
	if err := s.validateLayout(ctx, layout); err != nil {
		return nil, err
	}

	if err := s.repo.CreateLayout(ctx, layout); err != nil {
		return nil, fmt.Errorf("create layout: %w", err)
	}
	return layout, nil
}

func (s *service) GetLayout(ctx context.Context, id int64) (*Layout, error) {
	var layout Layout
	err := s.cache.GetOrSet(ctx, constants.BuildLayoutDetailKey(id), constants.TTL_LAYOUT_DETAIL, func() (interface{}, error) {
		return s.repo.GetLayoutByID(ctx, id)
	}, &layout)
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (s *service) ListLayouts(ctx context.Context, venueID int64, q pagination.Query) (*pagination.Result[Layout], error) {
	if venueID > 0 {
		if _, err := s.repo.GetVenueByID(ctx, venueID); err != nil {
			return nil, err
		}
	}
	layouts, total, err := s.repo.ListLayouts(ctx, venueID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(layouts, total, q)
	return &result, nil
}

func (s *service) UpdateLayout(ctx context.Context, id int64, req UpdateLayoutRequest) (*Layout, error) {
	layout := &Layout{
		ID:          id,
		VenueID:     req.VenueID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Version:     req.Version,
	}
	if err := s.validateLayout(ctx, layout); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLayout(ctx, layout); err != nil {
		return nil, fmt.Errorf("update layout: %w", err)
	}
	s.invalidate(ctx, constants.BuildLayoutDetailKey(id))

	return s.repo.GetLayoutByID(ctx, id)
}

func (s *service) DeleteLayout(ctx context.Context, id int64) error {
	if err := s.cascader.DeleteLayout(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, constants.BuildLayoutDetailKey(id))
	s.invalidatePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL)
	return nil
}

func (s *service) validateLayout(ctx context.Context, layout *Layout) error {
	return validation.Run(ctx, layout,
		validation.Fields[*Layout]("layout"),
		s.layoutVenueExists,
		s.uniqueLayoutName,
	)
}

func (s *service) layoutVenueExists(ctx context.Context, layout *Layout) error {
	_, err := s.repo.GetVenueByID(ctx, layout.VenueID)
	return err
}

func (s *service) uniqueLayoutName(ctx context.Context, layout *Layout) error {
	taken, err := s.repo.LayoutNameExists(ctx, layout.VenueID, layout.Name, layout.ID)
	if err != nil {
		return fmt.Errorf("check layout name: %w", err)
	}
	if taken {
		return apperr.Invalid("layout", "name", "must be unique within the venue")
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

func (s *service) invalidatePattern(ctx context.Context, pattern string) {
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", "pattern", pattern, "error", err)
	}
}
