package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// SessionTimeout enforces the idle timeout on every request carrying a
// session. An expired or malformed session is discarded and the actor must
// authenticate again.
func SessionTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.Next()
			return
		}
		if user.LoginTime.IsZero() {
			session.ClearSession(c)
			c.Next()
			return
		}
		if err := service.CheckLiveness(user.LoginTime, time.Now()); err != nil {
			logger.Infof("session for %s timed out [%s]", user.Email, user.Token)
			session.ClearSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"msg":     "session timed out, please log in again",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
