package tickets

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	tickets := rg.Group("/tickets", auth, middleware.RequireRoles(constants.RoleUser))
	{
		tickets.POST("", controller.Buy)          // POST /api/v1/tickets
		tickets.GET("", controller.ListMyTickets) // GET /api/v1/tickets
		tickets.GET("/:id", controller.GetTicket) // GET /api/v1/tickets/:id
		tickets.DELETE("/:id", controller.Cancel) // DELETE /api/v1/tickets/:id
	}
}
