package events

import (
	"net/http"

	"ticketeer/internal/shared/clock"
	"ticketeer/internal/shared/middleware"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/shared/utils/request"
	"ticketeer/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	clock   clock.Clock
}

func NewController(service Service, clk clock.Clock) *Controller {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Controller{service: service, clock: clk}
}

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create event", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", c.present(ctx, event), nil)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event ID is invalid", err)
		return
	}

	event, err := c.service.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, "Failed to get event", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", c.present(ctx, event), nil)
}

// ListEvents serves /events and /layouts/:id/events.
func (c *Controller) ListEvents(ctx *gin.Context) {
	var layoutID int64
	if ctx.Param("id") != "" {
		id, err := request.IDParam(ctx, "id")
		if err != nil {
			response.RespondError(ctx, "Layout ID is invalid", err)
			return
		}
		layoutID = id
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListEvents(ctx.Request.Context(), layoutID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get events", err)
		return
	}

	items := make([]EventResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, c.present(ctx, &result.Items[i]))
	}
	page := pagination.Result[EventResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", page, nil)
}

func (c *Controller) UpdateEvent(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event ID is invalid", err)
		return
	}

	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	event, err := c.service.UpdateEvent(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update event", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event updated successfully", c.present(ctx, event), nil)
}

func (c *Controller) DeleteEvent(ctx *gin.Context) {
	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Event ID is invalid", err)
		return
	}

	if err := c.service.DeleteEvent(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, "Failed to delete event", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

func (c *Controller) present(ctx *gin.Context, event *Event) EventResponse {
	return ToResponse(event, middleware.Location(ctx), c.clock.Now())
}
