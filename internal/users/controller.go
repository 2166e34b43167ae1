package users

import (
	"net/http"

	"ticketeer/internal/shared/middleware"
	"ticketeer/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Register(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	user, err := c.service.Register(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, "Failed to register user", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", user, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, "Failed to get user", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func (c *Controller) Deposit(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req DepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	user, err := c.service.Deposit(ctx.Request.Context(), userID, req.Amount)
	if err != nil {
		response.RespondError(ctx, "Failed to deposit", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Deposit successful", user, nil)
}
