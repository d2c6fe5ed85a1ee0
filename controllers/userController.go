package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	responder
	Svc *services.UserService
}

func NewUserController(svc *services.UserService, log *logger.Logger) *UserController {
	return &UserController{responder: responder{log: log}, Svc: svc}
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Svc.Delete(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id); err != nil {
		c.fail(ctx, "delete_user", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}
