package venues

import (
	"context"

	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface for venue operations
type Repository interface {
	// Venues
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id int64) (*Venue, error)
	ListVenues(ctx context.Context, q pagination.Query) ([]Venue, int64, error)
	UpdateVenue(ctx context.Context, venue *Venue) error
	DeleteVenue(ctx context.Context, id int64) error
	VenueNameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// Layouts
	CreateLayout(ctx context.Context, layout *Layout) error
	GetLayoutByID(ctx context.Context, id int64) (*Layout, error)
	LockLayout(ctx context.Context, id int64) (*Layout, error)
	ListLayouts(ctx context.Context, venueID int64, q pagination.Query) ([]Layout, int64, error)
	UpdateLayout(ctx context.Context, layout *Layout) error
	LayoutNameExists(ctx context.Context, venueID int64, name string, excludeID int64) (bool, error)
	LayoutIDsByVenue(ctx context.Context, venueID int64) ([]int64, error)
	DeleteLayouts(ctx context.Context, ids []int64) (int, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= VENUES =============

func (r *repository) CreateVenue(ctx context.Context, venue *Venue) error {
	return database.Translate(database.Conn(ctx, r.db).Create(venue).Error, "venue", venue.ID)
}

func (r *repository) GetVenueByID(ctx context.Context, id int64) (*Venue, error) {
	var venue Venue
	if err := database.Conn(ctx, r.db).First(&venue, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "venue", id)
	}
	return &venue, nil
}

func (r *repository) ListVenues(ctx context.Context, q pagination.Query) ([]Venue, int64, error) {
	var venues []Venue
	total, err := database.Paginate(database.Conn(ctx, r.db).Model(&Venue{}), q, &venues)
	if err != nil {
		return nil, 0, database.Translate(err, "venue", 0)
	}
	return venues, total, nil
}

func (r *repository) UpdateVenue(ctx context.Context, venue *Venue) error {
	err := database.UpdateVersioned(ctx, r.db, &Venue{}, "venue", venue.ID, venue.Version, map[string]any{
		"name":        venue.Name,
		"address":     venue.Address,
		"phone":       venue.Phone,
		"description": venue.Description,
	})
	if err != nil {
		return err
	}
	venue.Version++
	return nil
}

func (r *repository) DeleteVenue(ctx context.Context, id int64) error {
	n, err := database.DeleteByIDs(ctx, r.db, &Venue{}, []int64{id})
	if err != nil {
		return database.Translate(err, "venue", id)
	}
	if n == 0 {
		return database.Translate(gorm.ErrRecordNotFound, "venue", id)
	}
	return nil
}

func (r *repository) VenueNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&Venue{}).
		Where("name = ? AND id <> ?", name, excludeID))
}

// ============= LAYOUTS =============

func (r *repository) CreateLayout(ctx context.Context, layout *Layout) error {
	return database.Translate(database.Conn(ctx, r.db).Create(layout).Error, "layout", layout.ID)
}

func (r *repository) GetLayoutByID(ctx context.Context, id int64) (*Layout, error) {
	var layout Layout
	if err := database.Conn(ctx, r.db).First(&layout, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "layout", id)
	}
	return &layout, nil
}

// LockLayout reads the layout FOR UPDATE. Scheduling on a layout is
// serialized through this lock.
func (r *repository) LockLayout(ctx context.Context, id int64) (*Layout, error) {
	var layout Layout
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&layout, "id = ?", id).Error
	if err != nil {
		return nil, database.Translate(err, "layout", id)
	}
	return &layout, nil
}

func (r *repository) ListLayouts(ctx context.Context, venueID int64, q pagination.Query) ([]Layout, int64, error) {
	query := database.Conn(ctx, r.db).Model(&Layout{})
	if venueID > 0 {
		query = query.Where("venue_id = ?", venueID)
	}

	var layouts []Layout
	total, err := database.Paginate(query, q, &layouts)
	if err != nil {
		return nil, 0, database.Translate(err, "layout", 0)
	}
	return layouts, total, nil
}

func (r *repository) UpdateLayout(ctx context.Context, layout *Layout) error {
	err := database.UpdateVersioned(ctx, r.db, &Layout{}, "layout", layout.ID, layout.Version, map[string]any{
		"venue_id":    layout.VenueID,
		"name":        layout.Name,
		"description": layout.Description,
	})
	if err != nil {
		return err
	}
	layout.Version++
	return nil
}

func (r *repository) LayoutNameExists(ctx context.Context, venueID int64, name string, excludeID int64) (bool, error) {
	return database.Exists(database.Conn(ctx, r.db).Model(&Layout{}).
		Where("venue_id = ? AND name = ? AND id <> ?", venueID, name, excludeID))
}

func (r *repository) LayoutIDsByVenue(ctx context.Context, venueID int64) ([]int64, error) {
	var ids []int64
	err := database.Conn(ctx, r.db).Model(&Layout{}).
		Where("venue_id = ?", venueID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, database.Translate(err, "layout", 0)
}

func (r *repository) DeleteLayouts(ctx context.Context, ids []int64) (int, error) {
	n, err := database.DeleteByIDs(ctx, r.db, &Layout{}, ids)
	return n, database.Translate(err, "layout", 0)
}
