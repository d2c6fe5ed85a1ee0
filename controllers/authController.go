package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	responder
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService, log *logger.Logger) *AuthController {
	return &AuthController{responder: responder{log: log}, Svc: svc}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var in models.RegisterData
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.Svc.Register(ctx.Request.Context(), in)
	if err != nil {
		c.fail(ctx, "register", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token.
func (c *AuthController) Login(ctx *gin.Context) {
	var in models.LoginData
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	token, err := c.Svc.Login(ctx.Request.Context(), in)
	if err != nil {
		c.fail(ctx, "login", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"auth_token": token})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.Svc.Me(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx))
	if err != nil {
		c.fail(ctx, "me", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user)
}
