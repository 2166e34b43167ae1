package areas

import (
	"context"

	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
)

type Repository interface {
	// Areas
	CreateArea(ctx context.Context, area *Area) error
	GetAreaByID(ctx context.Context, id int64) (*Area, error)
	ListAreas(ctx context.Context, layoutID int64, q pagination.Query) ([]Area, int64, error)
	UpdateArea(ctx context.Context, area *Area) error
	AreaDescriptionExists(ctx context.Context, layoutID int64, description string, excludeID int64) (bool, error)
	AreaCoordsExist(ctx context.Context, layoutID int64, x, y int, excludeID int64) (bool, error)
	AreasByLayout(ctx context.Context, layoutID int64) ([]Area, error)
	AreaIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error)
	DeleteAreas(ctx context.Context, ids []int64) (int, error)

	// Seats
	CreateSeat(ctx context.Context, seat *Seat) error
	GetSeatByID(ctx context.Context, id int64) (*Seat, error)
	ListSeats(ctx context.Context, areaID int64, q pagination.Query) ([]Seat, int64, error)
	UpdateSeat(ctx context.Context, seat *Seat) error
	DeleteSeat(ctx context.Context, id int64) error
	SeatPositionExists(ctx context.Context, areaID int64, row, number int, excludeID int64) (bool, error)
	SeatsByAreas(ctx context.Context, areaIDs []int64) ([]Seat, error)
	DeleteSeatsByAreas(ctx context.Context, areaIDs []int64) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= AREAS =============

func (r *repository) CreateArea(ctx context.Context, area *Area) error {
	return database.Translate(database.Conn(ctx, r.db).Create(area).Error, "area", area.ID)
}

func (r *repository) GetAreaByID(ctx context.Context, id int64) (*Area, error) {
	var area Area
	if err := database.Conn(ctx, r.db).First(&area, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "area", id)
	}
	return &area, nil
}

func (r *repository) ListAreas(ctx context.Context, layoutID int64, q pagination.Query) ([]Area, int64, error) {
	query := database.Conn(ctx, r.db).Model(&Area{})
	if layoutID > 0 {
		query = query.Where("layout_id = ?", layoutID)
	}

	var areas []Area
	total, err := database.Paginate(query, q, &areas)
	if err != nil {
		return nil, 0, database.Translate(err, "area", 0)
	}
	return areas, total, nil
}

func (r *repository) UpdateArea(ctx context.Context, area *Area) error {
	err := database.UpdateVersioned(ctx, r.db, &Area{}, "area", area.ID, area.Version, map[string]any{
		"layout_id":   area.LayoutID,
		"description": area.Description,
		"coord_x":     area.CoordX,
		"coord_y":     area.CoordY,
		"base_price":  area.BasePrice,
	})
	if err != nil {
		return err
	}
	area.Version++
	return nil
}

func (r *repository) AreaDescriptionExists(ctx context.Context, layoutID int64, description string, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&Area{}).
		Where("layout_id = ? AND description = ? AND id <> ?", layoutID, description, excludeID))
}

func (r *repository) AreaCoordsExist(ctx context.Context, layoutID int64, x, y int, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&Area{}).
		Where("layout_id = ? AND coord_x = ? AND coord_y = ? AND id <> ?", layoutID, x, y, excludeID))
}

func (r *repository) AreasByLayout(ctx context.Context, layoutID int64) ([]Area, error) {
	var areas []Area
	err := database.Conn(ctx, r.db).
		Where("layout_id = ?", layoutID).
		Order("id").
		Find(&areas).Error
	return areas, database.Translate(err, "area", 0)
}

func (r *repository) AreaIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error) {
	if len(layoutIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := database.Conn(ctx, r.db).Model(&Area{}).
		Where("layout_id IN ?", layoutIDs).
		Order("id").
		Pluck("id", &ids).Error
	return ids, database.Translate(err, "area", 0)
}

func (r *repository) DeleteAreas(ctx context.Context, ids []int64) (int, error) {
	n, err := database.DeleteByIDs(ctx, r.db, &Area{}, ids)
	return n, database.Translate(err, "area", 0)
}

// ============= SEATS =============

func (r *repository) CreateSeat(ctx context.Context, seat *Seat) error {
	return database.Translate(database.Conn(ctx, r.db).Create(seat).Error, "seat", seat.ID)
}

func (r *repository) GetSeatByID(ctx context.Context, id int64) (*Seat, error) {
	var seat Seat
	if err := database.Conn(ctx, r.db).First(&seat, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "seat", id)
	}
	return &seat, nil
}

func (r *repository) ListSeats(ctx context.Context, areaID int64, q pagination.Query) ([]Seat, int64, error) {
	query := database.Conn(ctx, r.db).Model(&Seat{})
	if areaID > 0 {
		query = query.Where("area_id = ?", areaID)
	}

	var seats []Seat
	total, err := database.Paginate(query, q, &seats)
	if err != nil {
		return nil, 0, database.Translate(err, "seat", 0)
	}
	return seats, total, nil
}

func (r *repository) UpdateSeat(ctx context.Context, seat *Seat) error {
	err := database.UpdateVersioned(ctx, r.db, &Seat{}, "seat", seat.ID, seat.Version, map[string]any{
		"area_id":  seat.AreaID,
		"seat_row": seat.Row,
		"number":   seat.Number,
	})
	if err != nil {
		return err
	}
	seat.Version++
	return nil
}

func (r *repository) DeleteSeat(ctx context.Context, id int64) error {
	n, err := database.DeleteByIDs(ctx, r.db, &Seat{}, []int64{id})
	if err != nil {
		return database.Translate(err, "seat", id)
	}
	if n == 0 {
		return database.Translate(gorm.ErrRecordNotFound, "seat", id)
	}
	return nil
}

func (r *repository) SeatPositionExists(ctx context.Context, areaID int64, row, number int, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&Seat{}).
		Where("area_id = ? AND seat_row = ? AND number = ? AND id <> ?", areaID, row, number, excludeID))
}

func (r *repository) SeatsByAreas(ctx context.Context, areaIDs []int64) ([]Seat, error) {
	if len(areaIDs) == 0 {
		return nil, nil
	}
	var seats []Seat
	err := database.Conn(ctx, r.db).
		Where("area_id IN ?", areaIDs).
		Order("area_id, seat_row, number").
		Find(&seats).Error
	return seats, database.Translate(err, "seat", 0)
}

func (r *repository) DeleteSeatsByAreas(ctx context.Context, areaIDs []int64) (int, error) {
	if len(areaIDs) == 0 {
		return 0, nil
	}
	res := database.Conn(ctx, r.db).Where("area_id IN ?", areaIDs).Delete(&Seat{})
	return int(res.RowsAffected), database.Translate(res.Error, "seat", 0)
}
