package eventareas

import (
	"context"

	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

type Repository interface {
	// Event areas
	CreateEventArea(ctx context.Context, area *EventArea) error
	CreateEventAreas(ctx context.Context, areas []EventArea) error
	GetEventAreaByID(ctx context.Context, id int64) (*EventArea, error)
	ListEventAreas(ctx context.Context, eventID int64, q pagination.Query) ([]EventArea, int64, error)
	UpdateEventArea(ctx context.Context, area *EventArea) error
	HasNonPositivePrice(ctx context.Context, eventID int64) (bool, error)
	EventAreaIDsByEvents(ctx context.Context, eventIDs []int64) ([]int64, error)
	DeleteEventAreas(ctx context.Context, ids []int64) (int, error)

	// Event seats
	CreateEventSeat(ctx context.Context, seat *EventSeat) error
	CreateEventSeats(ctx context.Context, seats []EventSeat) error
	GetEventSeatByID(ctx context.Context, id int64) (*EventSeat, error)
	ListEventSeats(ctx context.Context, eventAreaID int64, q pagination.Query) ([]EventSeat, int64, error)
	UpdateEventSeat(ctx context.Context, seat *EventSeat) error
	EventSeatPositionExists(ctx context.Context, eventAreaID int64, row, number int, excludeID int64) (bool, error)
	LockEventSeat(ctx context.Context, id int64) (*EventSeat, error)
	SetEventSeatState(ctx context.Context, id int64, from, to SeatState) (bool, error)
	LockOccupiedCount(ctx context.Context, eventAreaIDs []int64) (int, error)
	DeleteEventSeat(ctx context.Context, id int64) error
	DeleteEventSeatsByAreas(ctx context.Context, eventAreaIDs []int64) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= EVENT AREAS =============

func (r *repository) CreateEventArea(ctx context.Context, area *EventArea) error {
	return database.Translate(database.Conn(ctx, r.db).Create(area).Error, "event area", area.ID)
}

// CreateEventAreas inserts areas in batches and fills in their ids.
func (r *repository) CreateEventAreas(ctx context.Context, areas []EventArea) error {
	if len(areas) == 0 {
		return nil
	}
	return database.Translate(database.Conn(ctx, r.db).CreateInBatches(&areas, batchSize).Error, "event area", 0)
}

func (r *repository) GetEventAreaByID(ctx context.Context, id int64) (*EventArea, error) {
	var area EventArea
	if err := database.Conn(ctx, r.db).First(&area, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "event area", id)
	}
	return &area, nil
}

func (r *repository) ListEventAreas(ctx context.Context, eventID int64, q pagination.Query) ([]EventArea, int64, error) {
	query := database.Conn(ctx, r.db).Model(&EventArea{})
	if eventID > 0 {
		query = query.Where("event_id = ?", eventID)
	}

	var areas []EventArea
	total, err := database.Paginate(query, q, &areas)
	if err != nil {
		return nil, 0, database.Translate(err, "event area", 0)
	}
	return areas, total, nil
}

func (r *repository) UpdateEventArea(ctx context.Context, area *EventArea) error {
	err := database.UpdateVersioned(ctx, r.db, &EventArea{}, "event area", area.ID, area.Version, map[string]any{
		"description": area.Description,
		"coord_x":     area.CoordX,
		"coord_y":     area.CoordY,
		"price":       area.Price,
	})
	if err != nil {
		return err
	}
	area.Version++
	return nil
}

func (r *repository) HasNonPositivePrice(ctx context.Context, eventID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&EventArea{}).
		Where("event_id = ? AND price <= 0", eventID))
}

func (r *repository) EventAreaIDsByEvents(ctx context.Context, eventIDs []int64) ([]int64, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := database.Conn(ctx, r.db).Model(&EventArea{}).
		Where("event_id IN ?", eventIDs).
		Order("id").
		Pluck("id", &ids).Error
	return ids, database.Translate(err, "event area", 0)
}

func (r *repository) DeleteEventAreas(ctx context.Context, ids []int64) (int, error) {
	n, err := database.DeleteByIDs(ctx, r.db, &EventArea{}, ids)
	return n, database.Translate(err, "event area", 0)
}

// ============= EVENT SEATS =============

func (r *repository) CreateEventSeat(ctx context.Context, seat *EventSeat) error {
	return database.Translate(database.Conn(ctx, r.db).Create(seat).Error, "event seat", seat.ID)
}

func (r *repository) CreateEventSeats(ctx context.Context, seats []EventSeat) error {
	if len(seats) == 0 {
		return nil
	}
	return database.Translate(database.Conn(ctx, r.db).CreateInBatches(&seats, batchSize).Error, "event seat", 0)
}

func (r *repository) GetEventSeatByID(ctx context.Context, id int64) (*EventSeat, error) {
	var seat EventSeat
	if err := database.Conn(ctx, r.db).First(&seat, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "event seat", id)
	}
	return &seat, nil
}

func (r *repository) ListEventSeats(ctx context.Context, eventAreaID int64, q pagination.Query) ([]EventSeat, int64, error) {
	query := database.Conn(ctx, r.db).Model(&EventSeat{})
	if eventAreaID > 0 {
		query = query.Where("event_area_id = ?", eventAreaID)
	}

	var seats []EventSeat
	total, err := database.Paginate(query, q, &seats)
	if err != nil {
		return nil, 0, database.Translate(err, "event seat", 0)
	}
	return seats, total, nil
}

// UpdateEventSeat moves or renumbers a seat. State is left untouched.
func (r *repository) UpdateEventSeat(ctx context.Context, seat *EventSeat) error {
	err := database.UpdateVersioned(ctx, r.db, &EventSeat{}, "event seat", seat.ID, seat.Version, map[string]any{
		"event_area_id": seat.EventAreaID,
		"seat_row":      seat.Row,
		"number":        seat.Number,
	})
	if err != nil {
		return err
	}
	seat.Version++
	return nil
}

func (r *repository) EventSeatPositionExists(ctx context.Context, eventAreaID int64, row, number int, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&EventSeat{}).
		Where("event_area_id = ? AND seat_row = ? AND number = ? AND id <> ?", eventAreaID, row, number, excludeID))
}

func (r *repository) LockEventSeat(ctx context.Context, id int64) (*EventSeat, error) {
	var seat EventSeat
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seat, "id = ?", id).Error
	if err != nil {
		return nil, database.Translate(err, "event seat", id)
	}
	return &seat, nil
}

// SetEventSeatState moves the seat from one state to another and reports
// whether the seat was in the expected state.
func (r *repository) SetEventSeatState(ctx context.Context, id int64, from, to SeatState) (bool, error) {
	res := database.Conn(ctx, r.db).Model(&EventSeat{}).
		Where("id = ? AND state = ?", id, from).
		Updates(map[string]any{
			"state":   to,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, database.Translate(res.Error, "event seat", id)
	}
	return res.RowsAffected == 1, nil
}

// LockOccupiedCount locks every seat of the given event areas and returns how
// many are occupied. Holding the locks keeps purchases out until the caller's
// transaction ends.
func (r *repository) LockOccupiedCount(ctx context.Context, eventAreaIDs []int64) (int, error) {
	if len(eventAreaIDs) == 0 {
		return 0, nil
	}
	var states []SeatState
	err := database.Conn(ctx, r.db).Model(&EventSeat{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_area_id IN ?", eventAreaIDs).
		Pluck("state", &states).Error
	if err != nil {
		return 0, database.Translate(err, "event seat", 0)
	}

	occupied := 0
	for _, s := range states {
		if s == SeatOccupied {
			occupied++
		}
	}
	return occupied, nil
}

func (r *repository) DeleteEventSeat(ctx context.Context, id int64) error {
	n, err := database.DeleteByIDs(ctx, r.db, &EventSeat{}, []int64{id})
	if err != nil {
		return database.Translate(err, "event seat", id)
	}
	if n == 0 {
		return database.Translate(gorm.ErrRecordNotFound, "event seat", id)
	}
	return nil
}

func (r *repository) DeleteEventSeatsByAreas(ctx context.Context, eventAreaIDs []int64) (int, error) {
	if len(eventAreaIDs) == 0 {
		return 0, nil
	}
	res := database.Conn(ctx, r.db).Where("event_area_id IN ?", eventAreaIDs).Delete(&EventSeat{})
	return int(res.RowsAffected), database.Translate(res.Error, "event seat", 0)
}
