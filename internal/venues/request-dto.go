package venues

type CreateVenueRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Description string `json:"description" binding:"required"`
}

type UpdateVenueRequest struct {
	CreateVenueRequest
	Version int64 `json:"version" binding:"required,min=1"`
}

type CreateLayoutRequest struct {
	VenueID     int64  `json:"venue_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateLayoutRequest struct {
	CreateLayoutRequest
	Version int64 `json:"version" binding:"required,min=1"`
}
