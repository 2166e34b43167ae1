package venues

import "time"

// Venue is a physical place that can host events. Name is unique across all
// venues.
type Venue struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex" validate:"notblank,max=255"`
	Address     string    `json:"address" gorm:"type:text;not null" validate:"notblank"`
	Phone       string    `json:"phone" gorm:"type:varchar(50)" validate:"max=50"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"notblank"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Layout is one seating arrangement of a venue. Events are scheduled on a
// layout and snapshot its areas and seats.
type Layout struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	VenueID     int64     `json:"venue_id" gorm:"not null;uniqueIndex:idx_layouts_venue_name,priority:1" validate:"gt=0"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_layouts_venue_name,priority:2" validate:"notblank,max=255"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"notblank"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
