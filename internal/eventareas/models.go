package eventareas

import "time"

// SeatState is the occupancy of an event seat. Only the purchase flow moves
// a seat between states.
type SeatState string

const (
	SeatFree     SeatState = "Free"
	SeatOccupied SeatState = "Occupied"
)

// EventArea is the live copy of a layout area for one event. Its price starts
// at the area's base price and is edited independently afterwards.
type EventArea struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EventID     int64     `json:"event_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:varchar(255);not null" validate:"max=255"`
	CoordX      int       `json:"coord_x" gorm:"not null" validate:"gt=0"`
	CoordY      int       `json:"coord_y" gorm:"not null" validate:"gt=0"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null" validate:"gt=0"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventSeat is the live copy of a seat for one event.
type EventSeat struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EventAreaID int64     `json:"event_area_id" gorm:"not null;uniqueIndex:idx_event_seats_area_position,priority:1"`
	Row         int       `json:"row" gorm:"column:seat_row;not null;uniqueIndex:idx_event_seats_area_position,priority:2" validate:"gt=0"`
	Number      int       `json:"number" gorm:"not null;uniqueIndex:idx_event_seats_area_position,priority:3" validate:"gt=0"`
	State       SeatState `json:"state" gorm:"type:varchar(16);not null;default:'Free';index"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
