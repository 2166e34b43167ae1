package areas

import (
	"context"
	"fmt"
	"strings"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/validation"
	"ticketeer/internal/venues"
)

// Layouts resolves the layout an area belongs to.
type Layouts interface {
	GetLayoutByID(ctx context.Context, id int64) (*venues.Layout, error)
}

// Cascader removes an area together with its seats.
type Cascader interface {
	DeleteArea(ctx context.Context, id int64) error
}

type Service interface {
	CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error)
	GetArea(ctx context.Context, id int64) (*Area, error)
	ListAreas(ctx context.Context, layoutID int64, q pagination.Query) (*pagination.Result[Area], error)
	UpdateArea(ctx context.Context, id int64, req UpdateAreaRequest) (*Area, error)
	DeleteArea(ctx context.Context, id int64) error

	CreateSeat(ctx context.Context, req CreateSeatRequest) (*Seat, error)
	GetSeat(ctx context.Context, id int64) (*Seat, error)
	ListSeats(ctx context.Context, areaID int64, q pagination.Query) (*pagination.Result[Seat], error)
	UpdateSeat(ctx context.Context, id int64, req UpdateSeatRequest) (*Seat, error)
	DeleteSeat(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	layouts  Layouts
	cascader Cascader
}

func NewService(repo Repository, layouts Layouts, cascader Cascader) Service {
	return &service{repo: repo, layouts: layouts, cascader: cascader}
}

// ============= AREAS =============

func (s *service) CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error) {
	area := newArea(req)
	area.Version = 1
	if err := s.validateArea(ctx, area); err != nil {
		return nil, err
	}

	if err := s.repo.CreateArea(ctx, area); err != nil {
		return nil, fmt.Errorf("create area: %w", err)
	}
	return area, nil
}

func (s *service) GetArea(ctx context.Context, id int64) (*Area, error) {
	return s.repo.GetAreaByID(ctx, id)
}

func (s *service) ListAreas(ctx context.Context, layoutID int64, q pagination.Query) (*pagination.Result[Area], error) {
	areas, total, err := s.repo.ListAreas(ctx, layoutID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(areas, total, q)
	return &result, nil
}

// UpdateArea edits the template only. Event areas copied from it keep their
// own description, coordinates and price.
func (s *service) UpdateArea(ctx context.Context, id int64, req UpdateAreaRequest) (*Area, error) {
	area := newArea(req.CreateAreaRequest)
	area.ID = id
	area.Version = req.Version
	if err := s.validateArea(ctx, area); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateArea(ctx, area); err != nil {
		return nil, fmt.Errorf("update area: %w", err)
	}
	return s.repo.GetAreaByID(ctx, id)
}

func (s *service) DeleteArea(ctx context.Context, id int64) error {
	return s.cascader.DeleteArea(ctx, id)
}

func newArea(req CreateAreaRequest) *Area {
	return &Area{
		LayoutID:    req.LayoutID,
		Description: strings.TrimSpace(req.Description),
		CoordX:      req.CoordX,
		CoordY:      req.CoordY,
		BasePrice:   req.BasePrice,
	}
}

func (s *service) validateArea(ctx context.Context, area *Area) error {
	return validation.Run(ctx, area,
		validation.Fields[*Area]("area"),
		s.areaLayoutExists,
		s.uniqueAreaDescription,
		s.uniqueAreaCoords,
	)
}

func (s *service) areaLayoutExists(ctx context.Context, area *Area) error {
	_, err := s.layouts.GetLayoutByID(ctx, area.LayoutID)
	return err
}

func (s *service) uniqueAreaDescription(ctx context.Context, area *Area) error {
	taken, err := s.repo.AreaDescriptionExists(ctx, area.LayoutID, area.Description, area.ID)
	if err != nil {
		return fmt.Errorf("check area description: %w", err)
	}
	if taken {
		return apperr.Invalid("area", "description", "must be unique within the layout")
	}
	return nil
}

func (s *service) uniqueAreaCoords(ctx context.Context, area *Area) error {
	taken, err := s.repo.AreaCoordsExist(ctx, area.LayoutID, area.CoordX, area.CoordY, area.ID)
	if err != nil {
		return fmt.Errorf("check area coordinates: %w", err)
	}
	if taken {
		return apperr.Invalid("area", "coord_x", "coordinates must be unique within the layout")
	}
	return nil
}

// ============= SEATS =============

func (s *service) CreateSeat(ctx context.Context, req CreateSeatRequest) (*Seat, error) {
	seat := &Seat{AreaID: req.AreaID, Row: req.Row, Number: req.Number, Version: 1}
	if err := s.validateSeat(ctx, seat); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSeat(ctx, seat); err != nil {
		return nil, fmt.Errorf("create seat: %w", err)
	}
	return seat, nil
}

func (s *service) GetSeat(ctx context.Context, id int64) (*Seat, error) {
	return s.repo.GetSeatByID(ctx, id)
}

func (s *service) ListSeats(ctx context.Context, areaID int64, q pagination.Query) (*pagination.Result[Seat], error) {
	seats, total, err := s.repo.ListSeats(ctx, areaID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(seats, total, q)
	return &result, nil
}

func (s *service) UpdateSeat(ctx context.Context, id int64, req UpdateSeatRequest) (*Seat, error) {
	seat := &Seat{ID: id, AreaID: req.AreaID, Row: req.Row, Number: req.Number, Version: req.Version}
	if err := s.validateSeat(ctx, seat); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSeat(ctx, seat); err != nil {
		return nil, fmt.Errorf("update seat: %w", err)
	}
	return s.repo.GetSeatByID(ctx, id)
}

// DeleteSeat is unconditional: template seats carry no occupancy.
func (s *service) DeleteSeat(ctx context.Context, id int64) error {
	return s.repo.DeleteSeat(ctx, id)
}

func (s *service) validateSeat(ctx context.Context, seat *Seat) error {
	return validation.Run(ctx, seat,
		validation.Fields[*Seat]("seat"),
		s.seatAreaExists,
		s.uniqueSeatPosition,
	)
}

func (s *service) seatAreaExists(ctx context.Context, seat *Seat) error {
	_, err := s.repo.GetAreaByID(ctx, seat.AreaID)
	return err
}

func (s *service) uniqueSeatPosition(ctx context.Context, seat *Seat) error {
	taken, err := s.repo.SeatPositionExists(ctx, seat.AreaID, seat.Row, seat.Number, seat.ID)
	if err != nil {
		return fmt.Errorf("check seat position: %w", err)
	}
	if taken {
		return apperr.Invalid("seat", "number", "row and number must be unique within the area")
	}
	return nil
}
