package users

import "github.com/gin-gonic/gin"

func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	me := rg.Group("/users/me", auth)
	{
		me.GET("", controller.GetMe)            // GET /api/v1/users/me
		me.POST("", controller.Register)        // POST /api/v1/users/me
		me.POST("/deposit", controller.Deposit) // POST /api/v1/users/me/deposit
	}
}
