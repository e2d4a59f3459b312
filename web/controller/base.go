// Package controller holds the HTTP handlers of the FutureCast web server.
package controller

import (
	"net/http"

	"github.com/futurecast/futurecast/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the login guard shared by every authenticated controller.
type BaseController struct{}

// checkLogin lets logged in requests through. API requests without a session get 401, page
// requests are sent back to the landing page.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
			return
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}
