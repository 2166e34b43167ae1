package events

import (
	"context"

	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
)

type Repository interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, layoutID int64, q pagination.Query) ([]Event, int64, error)
	UpdateEvent(ctx context.Context, event *Event) error
	EventsByLayout(ctx context.Context, layoutID int64) ([]Event, error)
	EventIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error)
	DeleteEvents(ctx context.Context, ids []int64) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEvent(ctx context.Context, event *Event) error {
	return database.Translate(database.Conn(ctx, r.db).Create(event).Error, "event", event.ID)
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	var event Event
	if err := database.Conn(ctx, r.db).First(&event, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "event", id)
	}
	return &event, nil
}

func (r *repository) ListEvents(ctx context.Context, layoutID int64, q pagination.Query) ([]Event, int64, error) {
	query := database.Conn(ctx, r.db).Model(&Event{})
	if layoutID > 0 {
		query = query.Where("layout_id = ?", layoutID)
	}

	var events []Event
	total, err := database.Paginate(query, q, &events)
	if err != nil {
		return nil, 0, database.Translate(err, "event", 0)
	}
	return events, total, nil
}

func (r *repository) UpdateEvent(ctx context.Context, event *Event) error {
	err := database.UpdateVersioned(ctx, r.db, &Event{}, "event", event.ID, event.Version, map[string]any{
		"layout_id":   event.LayoutID,
		"name":        event.Name,
		"description": event.Description,
		"image_url":   event.ImageURL,
		"time_start":  event.TimeStart,
		"time_end":    event.TimeEnd,
	})
	if err != nil {
		return err
	}
	event.Version++
	return nil
}

func (r *repository) EventsByLayout(ctx context.Context, layoutID int64) ([]Event, error) {
	var events []Event
	err := database.Conn(ctx, r.db).
		Where("layout_id = ?", layoutID).
		Order("time_start").
		Find(&events).Error
	return events, database.Translate(err, "event", 0)
}

func (r *repository) EventIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error) {
	if len(layoutIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := database.Conn(ctx, r.db).Model(&Event{}).
		Where("layout_id IN ?", layoutIDs).
		Order("id").
		Pluck("id", &ids).Error
	return ids, database.Translate(err, "event", 0)
}

func (r *repository) DeleteEvents(ctx context.Context, ids []int64) (int, error) {
	n, err := database.DeleteByIDs(ctx, r.db, &Event{}, ids)
	return n, database.Translate(err, "event", 0)
}
