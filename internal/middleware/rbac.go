package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

// RequireRoles must run after JWT; it rejects callers whose role is not listed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	names := make([]string, len(roles))
	for i, r := range roles {
		allowed[r] = struct{}{}
		names[i] = string(r)
	}
	denied := "access denied: requires role " + strings.Join(names, " or ")

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		claims, ok := claimsValue.(*models.JWTClaims)
		if !exists || !ok || claims == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, denied))
	}
}
