package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/portal-api/internal/middleware"
	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext returns the authenticated caller or false when the route
// was reached without the JWT middleware.
func actorFromContext(c *gin.Context) (service.Actor, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		return service.Actor{}, false
	}
	return service.ActorFromClaims(claims), true
}

// pathID reads a resource id from the route. Malformed ids can never match a
// row, so they are reported as not found.
func pathID(c *gin.Context, name string) (string, bool) {
	raw := strings.TrimSpace(c.Param(name))
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

func notFound(resource string) error {
	return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
}

func auditMeta(c *gin.Context) service.AuditMeta {
	return service.AuditMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request body")
}
