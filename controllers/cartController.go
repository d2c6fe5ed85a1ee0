package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	responder
	Svc *services.CartService
}

func NewCartController(svc *services.CartService, log *logger.Logger) *CartController {
	return &CartController{responder: responder{log: log}, Svc: svc}
}

func (c *CartController) GetCart(ctx *gin.Context) {
	lines, subtotal, err := c.Svc.Lines(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx))
	if err != nil {
		c.fail(ctx, "get_cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart":     lines,
		"subtotal": subtotal,
	})
}

// CreateCartItem adds a menu item to the caller's cart, merging with an
// existing line for the same item.
func (c *CartController) CreateCartItem(ctx *gin.Context) {
	var in models.CartLineInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	line, created, err := c.Svc.Add(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), in)
	if err != nil {
		c.fail(ctx, "add_to_cart", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendJSONResponse(ctx, status, line)
}

func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	menuItemID, ok := parseID(ctx, "menuItemId")
	if !ok {
		return
	}

	if err := c.Svc.Remove(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), menuItemID); err != nil {
		c.fail(ctx, "remove_from_cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	removed, err := c.Svc.Clear(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx))
	if err != nil {
		c.fail(ctx, "clear_cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared", "removed": removed})
}
