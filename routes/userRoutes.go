package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(api *gin.RouterGroup, c *controllers.UserController) {
	api.DELETE("/users/:id", c.DeleteUser)
}
