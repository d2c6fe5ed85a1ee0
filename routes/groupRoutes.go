package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

var groupPaths = map[string]policy.Role{
	"manager":       policy.RoleManager,
	"delivery-crew": policy.RoleDeliveryCrew,
}

func GroupRoutes(api *gin.RouterGroup, svc *services.RoleService, log *logger.Logger) {
	for path, role := range groupPaths {
		c := controllers.NewGroupController(svc, role, log)
		members := api.Group("/groups/" + path + "/users")
		{
			members.GET("", c.GetMembers)
			members.POST("", c.AddMember)
			members.DELETE("/:id", c.RemoveMember)
		}
	}
}
