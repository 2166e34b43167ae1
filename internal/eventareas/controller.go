package eventareas

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

// EVENT AREAS

func (c *Controller) CreateEventArea(ctx *gin.Context) {
	var req CreateEventAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	area, err := c.service.CreateEventArea(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create event area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event area created successfully", area, nil)
}

func (c *Controller) GetEventArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event area ID is invalid", err)
		return
	}

	area, err := c.service.GetEventArea(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get event area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event area retrieved successfully", area, nil)
}

// ListEventAreas serves /events/:id/areas.
func (c *Controller) ListEventAreas(ctx *gin.Context) {
	eventID, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event ID is invalid", err)
		return
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListEventAreas(ctx.Request.Context(), eventID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get event areas", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event areas retrieved successfully", result, nil)
}

func (c *Controller) UpdateEventArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event area ID is invalid", err)
		return
	}

	var req UpdateEventAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	area, err := c.service.UpdateEventArea(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update event area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event area updated successfully", area, nil)
}

func (c *Controller) DeleteEventArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event area ID is invalid", err)
		return
	}

	if err := c.service.DeleteEventArea(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete event area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event area deleted successfully", nil, nil)
}

// EVENT SEATS

func (c *Controller) CreateEventSeat(ctx *gin.Context) {
	var req CreateEventSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.CreateEventSeat(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create event seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event seat created successfully", seat, nil)
}

func (c *Controller) GetEventSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event seat ID is invalid", err)
		return
	}

	seat, err := c.service.GetEventSeat(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get event seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event seat retrieved successfully", seat, nil)
}

// ListEventSeats serves /event-areas/:id/seats.
func (c *Controller) ListEventSeats(ctx *gin.Context) {
	eventAreaID, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event area ID is invalid", err)
		return
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListEventSeats(ctx.Request.Context(), eventAreaID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get event seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event seats retrieved successfully", result, nil)
}

func (c *Controller) UpdateEventSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event seat ID is invalid", err)
		return
	}

	var req UpdateEventSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateEventSeat(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update event seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event seat updated successfully", seat, nil)
}

func (c *Controller) DeleteEventSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event seat ID is invalid", err)
		return
	}

	if err := c.service.DeleteEventSeat(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete event seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event seat deleted successfully", nil, nil)
}
