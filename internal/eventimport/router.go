package eventimport

import (
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupImportRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	admin := rg.Group("/admin", auth, middleware.RequireRoles(constants.RoleEventManager))
	{
		admin.POST("/events/import", controller.Import) // POST /api/v1/admin/events/import
	}
}
