package areas

type CreateAreaRequest struct {
	LayoutID    int64   `json:"layout_id" binding:"required"`
	Description string  `json:"description" binding:"required"`
	CoordX      int     `json:"coord_x"`
	CoordY      int     `json:"coord_y"`
	BasePrice   float64 `json:"base_price"`
}

type UpdateAreaRequest struct {
	CreateAreaRequest
	Version int64 `json:"version" binding:"required,min=1"`
}

type CreateSeatRequest struct {
	AreaID int64 `json:"area_id" binding:"required"`
	Row    int   `json:"row"`
	Number int   `json:"number"`
}

type UpdateSeatRequest struct {
	CreateSeatRequest
	Version int64 `json:"version" binding:"required,min=1"`
}
