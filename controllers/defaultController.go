package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Little Lemon API. Send "Authorization: Bearer <token>" on every /api request.

The following are the endpoints for this API:

AUTH
- POST "/auth/users" - Create user account
- POST "/auth/token/login" - Obtain an access token
- GET "/auth/users/me" - Current user

MENU
- GET, POST "/api/categories" - List or create categories
- DELETE "/api/categories/:id" - Delete an unused category
- GET, POST "/api/menu-items" - List (category, price, search, ordering, page, limit) or create menu items
- GET, PUT, PATCH, DELETE "/api/menu-items/:id" - Single menu item
- POST "/api/menu-items/:id/image" - Upload a menu item image

CART
- GET, POST, DELETE "/api/cart/menu-items" - List, add to or clear your cart
- DELETE "/api/cart/menu-items/:menuItemId" - Remove one line

ORDER
- GET, POST "/api/orders" - List orders (user, delivery_crew, date, total, ordering, page, limit) or place one from the cart
- GET, PUT, PATCH, DELETE "/api/orders/:id" - Single order

GROUPS
- GET, POST "/api/groups/manager/users" - List or add managers
- DELETE "/api/groups/manager/users/:id" - Remove a manager
- GET, POST "/api/groups/delivery-crew/users" - List or add delivery crew
- DELETE "/api/groups/delivery-crew/users/:id" - Remove a delivery crew member

ADMIN
- DELETE "/api/users/:id" - Delete a user and everything they own`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
