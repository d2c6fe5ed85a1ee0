package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type membershipRequest struct {
	Username string `json:"username" binding:"required"`
}

// GroupController manages the members of one role. The manager and
// delivery crew endpoints each get their own instance.
type GroupController struct {
	responder
	Svc  *services.RoleService
	Role policy.Role
}

func NewGroupController(svc *services.RoleService, role policy.Role, log *logger.Logger) *GroupController {
	return &GroupController{responder: responder{log: log}, Svc: svc, Role: role}
}

func (c *GroupController) GetMembers(ctx *gin.Context) {
	users, err := c.Svc.Members(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), c.Role)
	if err != nil {
		c.fail(ctx, "list_group_members", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *GroupController) AddMember(ctx *gin.Context) {
	var in membershipRequest
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	user, added, err := c.Svc.Add(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), in.Username, c.Role)
	if err != nil {
		c.fail(ctx, "add_group_member", err)
		return
	}

	if !added {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": user.Username + " is already in " + string(c.Role)})
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": user.Username + " added to " + string(c.Role)})
}

func (c *GroupController) RemoveMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Svc.Remove(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id, c.Role); err != nil {
		c.fail(ctx, "remove_group_member", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User removed from " + string(c.Role)})
}
