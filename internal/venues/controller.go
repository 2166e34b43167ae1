package venues

import (
	"net/http"

	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/utils/request"
	"ticketeer/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// VENUES

func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	venue, err := c.service.CreateVenue(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create venue", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}

func (c *Controller) GetVenue(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Venue ID is invalid", err)
		return
	}

	venue, err := c.service.GetVenue(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get venue", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

func (c *Controller) ListVenues(ctx *gin.Context) {
	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListVenues(ctx.Request.Context(), q)
	if err != nil {
		response.RespondError(ctx, "Failed to get venues", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", result, nil)
}

func (c *Controller) UpdateVenue(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Venue ID is invalid", err)
		return
	}

	var req UpdateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	venue, err := c.service.UpdateVenue(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update venue", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue updated successfully", venue, nil)
}

func (c *Controller) DeleteVenue(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Venue ID is invalid", err)
		return
	}

	if err := c.service.DeleteVenue(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete venue", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue deleted successfully", nil, nil)
}

// LAYOUTS

func (c *Controller) CreateLayout(ctx *gin.Context) {
	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.CreateLayout(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout created successfully", layout, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Layout ID is invalid", err)
		return
	}

	layout, err := c.service.GetLayout(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}

// ListLayouts serves both /layouts and /venues/:id/layouts.
func (c *Controller) ListLayouts(ctx *gin.Context) {
	var venueID int64
	if ctx.Param("id") != "" {
		id, err := request.IDParam(ctx, "id")
		if err != nil {
			response.RespondError(ctx, "Venue ID is invalid", err)
			return
		}
		venueID = id
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListLayouts(ctx.Request.Context(), venueID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get layouts", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", result, nil)
}

func (c *Controller) UpdateLayout(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Layout ID is invalid", err)
		return
	}

	var req UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.UpdateLayout(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout updated successfully", layout, nil)
}

func (c *Controller) DeleteLayout(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Layout ID is invalid", err)
		return
	}

	if err := c.service.DeleteLayout(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout deleted successfully", nil, nil)
}
