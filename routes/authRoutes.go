package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, c *controllers.AuthController) {
	auth := server.Group("/auth")
	{
		auth.POST("/users", c.Register)
		auth.POST("/token/login", c.Login)
		auth.GET("/users/me", middlewares.RequireAuthenticated(), c.Me)
	}
}
