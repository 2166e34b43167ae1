package events

import "time"

// Event is a scheduled occurrence on a layout. Times are stored in UTC.
type Event struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	LayoutID    int64     `json:"layout_id" gorm:"not null;index" validate:"gt=0"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null" validate:"notblank,max=255"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"notblank"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500);not null" validate:"notblank,max=500"`
	TimeStart   time.Time `json:"time_start" gorm:"not null;index"`
	TimeEnd     time.Time `json:"time_end" gorm:"not null"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	LayoutID    int64     `json:"layout_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description" binding:"required"`
	ImageURL    string    `json:"image_url" binding:"required"`
	TimeStart   time.Time `json:"time_start" binding:"required"`
	TimeEnd     time.Time `json:"time_end" binding:"required"`
}

type UpdateEventRequest struct {
	CreateEventRequest
	Version int64 `json:"version" binding:"required,min=1"`
}

// EventResponse is an event with its times shown in the caller's zone.
type EventResponse struct {
	ID          int64     `json:"id"`
	LayoutID    int64     `json:"layout_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	TimeStart   time.Time `json:"time_start"`
	TimeEnd     time.Time `json:"time_end"`
	Status      Status    `json:"status"`
	Version     int64     `json:"version"`
}

// ToResponse converts e for display in loc.
func ToResponse(e *Event, loc *time.Location, now time.Time) EventResponse {
	return EventResponse{
		ID:          e.ID,
		LayoutID:    e.LayoutID,
		Name:        e.Name,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		TimeStart:   e.TimeStart.In(loc),
		TimeEnd:     e.TimeEnd.In(loc),
		Status:      StatusAt(e, now),
		Version:     e.Version,
	}
}
