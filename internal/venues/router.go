package venues

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	manager := middleware.RequireRoles(constants.RoleVenueManager)

	venues := rg.Group("/venues")
	{
		venues.GET("", controller.ListVenues)              // GET /api/v1/venues
		venues.GET("/:id", controller.GetVenue)            // GET /api/v1/venues/:id
		venues.GET("/:id/layouts", controller.ListLayouts) // GET /api/v1/venues/:id/layouts

		venues.POST("", auth, manager, controller.CreateVenue)       // POST /api/v1/venues
		venues.PUT("/:id", auth, manager, controller.UpdateVenue)    // PUT /api/v1/venues/:id
		venues.DELETE("/:id", auth, manager, controller.DeleteVenue) // DELETE /api/v1/venues/:id
	}

	layouts := rg.Group("/layouts")
	{
		layouts.GET("", controller.ListLayouts)   // GET /api/v1/layouts
		layouts.GET("/:id", controller.GetLayout) // GET /api/v1/layouts/:id

		layouts.POST("", auth, manager, controller.CreateLayout)       // POST /api/v1/layouts
		layouts.PUT("/:id", auth, manager, controller.UpdateLayout)    // PUT /api/v1/layouts/:id
		layouts.DELETE("/:id", auth, manager, controller.DeleteLayout) // DELETE /api/v1/layouts/:id
	}
}
