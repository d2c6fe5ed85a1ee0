package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/gin-gonic/gin"
)

func MenuRoutes(api *gin.RouterGroup, categories *controllers.CategoryController, items *controllers.MenuItemController) {
	api.GET("/categories", categories.GetCategories)
	api.POST("/categories", categories.CreateCategory)
	api.DELETE("/categories/:id", categories.DeleteCategory)

	menu := api.Group("/menu-items")
	{
		menu.GET("", items.GetMenuItems)
		menu.POST("", items.CreateMenuItem)
		menu.GET("/:id", items.GetMenuItem)
		menu.PUT("/:id", items.UpdateMenuItem)
		menu.PATCH("/:id", items.UpdateMenuItem)
		menu.DELETE("/:id", items.DeleteMenuItem)
		menu.POST("/:id/image", items.UploadMenuItemImage)
	}
}
