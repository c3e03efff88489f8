package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/authz"
	"nusacrm/internal/notify"
	"nusacrm/internal/session"
)

// RequireSession sends an unauthenticated operator to the login boundary.
func RequireSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.IsAuthenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireManager guards the approval routes. The backend re-checks the role
// on every transition; this only keeps the UI honest.
func RequireManager(sess *session.Session, center *notify.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.CanApproveDeals(sess.Role()) {
			center.Push(notify.LevelError, "This action requires the manager role")
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
