package areas

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAreaRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	manager := middleware.RequireRoles(constants.RoleVenueManager)

	rg.GET("/layouts/:id/areas", controller.ListAreas) // GET /api/v1/layouts/:id/areas

	areas := rg.Group("/areas")
	{
		areas.GET("/:id", controller.GetArea)         // GET /api/v1/areas/:id
		areas.GET("/:id/seats", controller.ListSeats) // GET /api/v1/areas/:id/seats

		areas.POST("", auth, manager, controller.CreateArea)       // POST /api/v1/areas
		areas.PUT("/:id", auth, manager, controller.UpdateArea)    // PUT /api/v1/areas/:id
		areas.DELETE("/:id", auth, manager, controller.DeleteArea) // DELETE /api/v1/areas/:id
	}

	seats := rg.Group("/seats", auth, manager)
	{
		seats.POST("", controller.CreateSeat)       // POST /api/v1/seats
		seats.GET("/:id", controller.GetSeat)       // GET /api/v1/seats/:id
		seats.PUT("/:id", controller.UpdateSeat)    // PUT /api/v1/seats/:id
		seats.DELETE("/:id", controller.DeleteSeat) // DELETE /api/v1/seats/:id
	}
}
