package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(api *gin.RouterGroup, c *controllers.CartController) {
	cart := api.Group("/cart/menu-items")
	{
		cart.GET("", c.GetCart)
		cart.POST("", c.CreateCartItem)
		cart.DELETE("", c.ClearCart)
		cart.DELETE("/:menuItemId", c.RemoveCartItem)
	}
}
