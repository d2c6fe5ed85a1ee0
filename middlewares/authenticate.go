package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (services.Principal, error)
}

// Authenticate resolves a Bearer token into the request principal. Requests
// without an Authorization header continue as anonymous; a token that does
// not authenticate is refused with 401, any other resolver failure with its
// own status.
func Authenticate(resolver PrincipalResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.Set(principalKey, services.Principal{})
			ctx.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			return
		}

		principal, err := resolver.Resolve(ctx.Request.Context(), token)
		if errors.Is(err, apperr.ErrNotAuthenticated) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		if err != nil {
			ctx.Error(err)
			ctx.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"message": "Internal server error"})
			return
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

// CurrentPrincipal returns the principal stored by Authenticate, or the
// anonymous principal.
func CurrentPrincipal(ctx *gin.Context) services.Principal {
	if v, ok := ctx.Get(principalKey); ok {
		if p, ok := v.(services.Principal); ok {
			return p
		}
	}
	return services.Principal{}
}
