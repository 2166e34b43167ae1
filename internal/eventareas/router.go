package eventareas

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventAreaRoutes registers the live event inventory. Seat states are
// public so clients can render availability.
func SetupEventAreaRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	manager := middleware.RequireRoles(constants.RoleEventManager)

	rg.GET("/events/:id/areas", controller.ListEventAreas) // GET /api/v1/events/:id/areas

	areas := rg.Group("/event-areas")
	{
		areas.GET("/:id", controller.GetEventArea)         // GET /api/v1/event-areas/:id
		areas.GET("/:id/seats", controller.ListEventSeats) // GET /api/v1/event-areas/:id/seats

		areas.POST("", auth, manager, controller.CreateEventArea)       // POST /api/v1/event-areas
		areas.PUT("/:id", auth, manager, controller.UpdateEventArea)    // PUT /api/v1/event-areas/:id
		areas.DELETE("/:id", auth, manager, controller.DeleteEventArea) // DELETE /api/v1/event-areas/:id
	}

	seats := rg.Group("/event-seats")
	{
		seats.GET("/:id", controller.GetEventSeat) // GET /api/v1/event-seats/:id

		seats.POST("", auth, manager, controller.CreateEventSeat)       // POST /api/v1/event-seats
		seats.PUT("/:id", auth, manager, controller.UpdateEventSeat)    // PUT /api/v1/event-seats/:id
		seats.DELETE("/:id", auth, manager, controller.DeleteEventSeat) // DELETE /api/v1/event-seats/:id
	}
}
