package events

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes registers the event catalog. Reads are public; optional
// identity only picks the display time zone.
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller, auth, optionalAuth gin.HandlerFunc) {
	manager := middleware.RequireRoles(constants.RoleEventManager)

	rg.GET("/layouts/:id/events", optionalAuth, controller.ListEvents) // GET /api/v1/layouts/:id/events

	events := rg.Group("/events")
	{
		events.GET("", optionalAuth, controller.ListEvents)   // GET /api/v1/events
		events.GET("/:id", optionalAuth, controller.GetEvent) // GET /api/v1/events/:id

		events.POST("", auth, manager, controller.CreateEvent)       // POST /api/v1/events
		events.PUT("/:id", auth, manager, controller.UpdateEvent)    // PUT /api/v1/events/:id
		events.DELETE("/:id", auth, manager, controller.DeleteEvent) // DELETE /api/v1/events/:id
	}
}
