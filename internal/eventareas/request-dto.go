package eventareas

type CreateEventAreaRequest struct {
	EventID     int64   `json:"event_id" binding:"required"`
	Description string  `json:"description"`
	CoordX      int     `json:"coord_x"`
	CoordY      int     `json:"coord_y"`
	Price       float64 `json:"price"`
}

type UpdateEventAreaRequest struct {
	Description string  `json:"description"`
	CoordX      int     `json:"coord_x"`
	CoordY      int     `json:"coord_y"`
	Price       float64 `json:"price"`
	Version     int64   `json:"version" binding:"required,min=1"`
}

type CreateEventSeatRequest struct {
	EventAreaID int64 `json:"event_area_id"`
	Row         int   `json:"row"`
	Number      int   `json:"number"`
}

type UpdateEventSeatRequest struct {
	CreateEventSeatRequest
	Version int64 `json:"version" binding:"required,min=1"`
}
