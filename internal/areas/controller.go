package areas

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

// AREAS

func (c *Controller) CreateArea(ctx *gin.Context) {
	var req CreateAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	area, err := c.service.CreateArea(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Area created successfully", area, nil)
}

func (c *Controller) GetArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Area ID is invalid", err)
		return
	}

	area, err := c.service.GetArea(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Area retrieved successfully", area, nil)
}

// ListAreas serves /layouts/:id/areas.
func (c *Controller) ListAreas(ctx *gin.Context) {
	layoutID, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Layout ID is invalid", err)
		return
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListAreas(ctx.Request.Context(), layoutID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get areas", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Areas retrieved successfully", result, nil)
}

func (c *Controller) UpdateArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Area ID is invalid", err)
		return
	}

	var req UpdateAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	area, err := c.service.UpdateArea(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Area updated successfully", area, nil)
}

func (c *Controller) DeleteArea(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Area ID is invalid", err)
		return
	}

	if err := c.service.DeleteArea(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete area", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Area deleted successfully", nil, nil)
}

// SEATS

func (c *Controller) CreateSeat(ctx *gin.Context) {
	var req CreateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.CreateSeat(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seat created successfully", seat, nil)
}

func (c *Controller) GetSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Seat ID is invalid", err)
		return
	}

	seat, err := c.service.GetSeat(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

// ListSeats serves /areas/:id/seats.
func (c *Controller) ListSeats(ctx *gin.Context) {
	areaID, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Area ID is invalid", err)
		return
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListSeats(ctx.Request.Context(), areaID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", result, nil)
}

func (c *Controller) UpdateSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Seat ID is invalid", err)
		return
	}

	var req UpdateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateSeat(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat updated successfully", seat, nil)
}

func (c *Controller) DeleteSeat(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Seat ID is invalid", err)
		return
	}

	if err := c.service.DeleteSeat(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat deleted successfully", nil, nil)
}
