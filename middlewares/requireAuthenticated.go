package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RequireAuthenticated() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !CurrentPrincipal(ctx).Authenticated {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication credentials were not provided."})
			return
		}

		ctx.Next()
	}
}
