package middleware

import (
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
)

// Context keys set by WithAuthCheck.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// CurrentRole returns the authenticated user's role, Viewer when unknown.
func CurrentRole(c *gin.Context) role.Role {
	v, _ := c.Get(ContextUserRole)
	r, ok := v.(role.Role)
	if !ok {
		return role.Viewer
	}
	return r
}
