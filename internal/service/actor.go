package service

import "github.com/noah-isme/portal-api/internal/models"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Name string
	Role models.UserRole
}

// ActorFromClaims builds an Actor from verified token claims.
func ActorFromClaims(claims *models.JWTClaims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Owns reports whether the actor is ownerID or an administrator.
func (a Actor) Owns(ownerID string) bool {
	return a.ID != "" && (a.ID == ownerID || a.IsAdmin())
}
