// Package session stores the authenticated actor in the gin cookie session.
// The session is an explicit object created at login and discarded on
// logout, expiry, or malformed state; it is never persisted to the store.
package session

import (
	"encoding/gob"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/storage/model"
)

const loginUser = "LOGIN_USER"

// CookieName is the session cookie, also cleared explicitly on logout.
const CookieName = "intern-portal"

func init() {
	gob.Register(User{})
}

// User is the session payload: one authenticated actor and its login time.
// Token only correlates log lines, it carries no authority.
type User struct {
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Name      string     `json:"name"`
	College   string     `json:"college"`
	LoginTime time.Time  `json:"loginTime"`
	Token     string     `json:"-"`
}

// AssignedLabel is the string recorded in an issue's assigned_to column when
// this actor claims it.
func (u *User) AssignedLabel() string {
	return string(u.Role) + " - " + u.Name
}

func SetLoginUser(c *gin.Context, user *User) error {
	s := sessions.Default(c)
	s.Set(loginUser, *user)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}
