package tickets

import (
	"net/http"

	"ticketeer/internal/shared/middleware"
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

func (c *Controller) Buy(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BuyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	req.UserID = userID

	result, err := c.service.Buy(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to buy ticket", err)
		return
	}

	if result.Outcome == OutcomeInsufficientFunds {
		response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Insufficient funds", result, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Ticket purchased successfully", result, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Ticket ID is invalid", err)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), id, userID); err != nil {
		response.RespondError(ctx, "Failed to cancel ticket", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket cancelled successfully", nil, nil)
}

func (c *Controller) GetTicket(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := request.IDParam(ctx, "id")
	if err != nil {
		response.RespondError(ctx, "Ticket ID is invalid", err)
		return
	}

	ticket, err := c.service.GetTicket(ctx.Request.Context(), id, userID)
	if err != nil {
		response.RespondError(ctx, "Failed to get ticket", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (c *Controller) ListMyTickets(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var q pagination.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListUserTickets(ctx.Request.Context(), userID, q)
	if err != nil {
		response.RespondError(ctx, "Failed to get tickets", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets retrieved successfully", result, nil)
}
