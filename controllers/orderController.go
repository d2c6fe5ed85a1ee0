package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	responder
	Svc *services.OrderService
}

func NewOrderController(svc *services.OrderService, log *logger.Logger) *OrderController {
	return &OrderController{responder: responder{log: log}, Svc: svc}
}

// CreateOrder turns the caller's cart into an order.
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	order, err := c.Svc.CreateFromCart(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx))
	if err != nil {
		c.fail(ctx, "create_order", err)
		return
	}

	if c.log != nil {
		c.log.Info("create_order", middlewares.RequestID(ctx), "order placed",
			slog.Uint64("order_id", uint64(order.ID)),
			slog.String("total", order.Total.String()),
			slog.Int("items", len(order.OrderItems)),
		)
	}
	sendJSONResponse(ctx, http.StatusCreated, order)
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	q, err := orderQueryFrom(ctx)
	if err != nil {
		c.fail(ctx, "list_orders", err)
		return
	}

	orders, total, err := c.Svc.List(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), q)
	if err != nil {
		c.fail(ctx, "list_orders", err)
		return
	}

	sendList(ctx, orders, total, q.Page())
}

func orderQueryFrom(ctx *gin.Context) (repository.OrderQuery, error) {
	q := repository.NewOrderQuery()

	if username := ctx.Query("user"); username != "" {
		q = q.WithOwner(username)
	}
	if username := ctx.Query("delivery_crew"); username != "" {
		q = q.WithDeliveryCrew(username)
	}
	if raw := ctx.Query("date"); raw != "" {
		date, err := models.ParseOrderDate(raw)
		if err != nil {
			return q, apperr.Invalid("date", "use the YYYY-MM-DD format")
		}
		q = q.WithDate(date)
	}
	if raw := ctx.Query("total"); raw != "" {
		total, err := models.MoneyFromString(raw)
		if err != nil {
			return q, apperr.Invalid("total", "enter a number")
		}
		q = q.WithTotal(total)
	}

	keys, err := repository.ParseOrdering(ctx.Query("ordering"), repository.OrderSortFields)
	if err != nil {
		return q, err
	}
	page, err := pageFromQuery(ctx)
	if err != nil {
		return q, err
	}
	return q.OrderedBy(keys...).Paginate(page), nil
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	order, err := c.Svc.Get(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id)
	if err != nil {
		c.fail(ctx, "get_order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

// UpdateOrder serves PUT and PATCH. The body is kept as raw fields so the
// service can check which ones the caller may touch before decoding them.
func (c *OrderController) UpdateOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var payload map[string]json.RawMessage
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		badRequest(ctx, err)
		return
	}

	partial := ctx.Request.Method == http.MethodPatch
	order, err := c.Svc.Update(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id, payload, partial)
	if err != nil {
		c.fail(ctx, "update_order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Svc.Delete(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id); err != nil {
		c.fail(ctx, "delete_order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted"})
}
