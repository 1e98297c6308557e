// Package controller provides the HTTP request handlers for the intern
// portal: authentication, registration, the role dashboards' data, and the
// issue workflow endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/web/session"
)

// BaseController provides common functionality for all controllers,
// including the authentication check.
type BaseController struct{}

// checkLogin rejects requests that do not carry a live session.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "please log in first")
		c.Abort()
		return
	}
	c.Next()
}
