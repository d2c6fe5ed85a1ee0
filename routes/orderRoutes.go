package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api *gin.RouterGroup, c *controllers.OrderController) {
	orders := api.Group("/orders")
	{
		orders.GET("", c.GetOrders)
		orders.POST("", c.CreateOrder)
		orders.GET("/:id", c.GetOrder)
		orders.PUT("/:id", c.UpdateOrder)
		orders.PATCH("/:id", c.UpdateOrder)
		orders.DELETE("/:id", c.DeleteOrder)
	}
}
