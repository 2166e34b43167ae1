package areas

import "time"

// Area is a priced block of a layout. Description and the (CoordX, CoordY)
// pair are each unique within the layout.
type Area struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	LayoutID    int64     `json:"layout_id" gorm:"not null;uniqueIndex:idx_areas_layout_coords,priority:1;uniqueIndex:idx_areas_layout_description,priority:1" validate:"gt=0"`
	Description string    `json:"description" gorm:"type:varchar(255);not null;uniqueIndex:idx_areas_layout_description,priority:2" validate:"notblank,max=255"`
	CoordX      int       `json:"coord_x" gorm:"not null;uniqueIndex:idx_areas_layout_coords,priority:2" validate:"gt=0"`
	CoordY      int       `json:"coord_y" gorm:"not null;uniqueIndex:idx_areas_layout_coords,priority:3" validate:"gt=0"`
	BasePrice   float64   `json:"base_price" gorm:"type:decimal(10,2);not null" validate:"gt=0"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Seat is a physical seat inside an area.
type Seat struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AreaID    int64     `json:"area_id" gorm:"not null;uniqueIndex:idx_seats_area_position,priority:1" validate:"gt=0"`
	Row       int       `json:"row" gorm:"column:seat_row;not null;uniqueIndex:idx_seats_area_position,priority:2" validate:"gt=0"`
	Number    int       `json:"number" gorm:"not null;uniqueIndex:idx_seats_area_position,priority:3" validate:"gt=0"`
	Version   int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
