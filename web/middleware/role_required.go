package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/session"
)

// RoleRequired rejects requests whose session actor does not hold one of the
// given roles. Fine-grained rules (ownership, claim preconditions) stay in
// the issue service's CanTransition.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !allowed[user.Role] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
