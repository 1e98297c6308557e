package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles login, logout, and registration.
type IndexController struct {
	BaseController

	authService        *service.AuthService
	userService        *service.UserService
	offerLetterService *service.OfferLetterService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, authService *service.AuthService, userService *service.UserService, offerLetterService *service.OfferLetterService) *IndexController {
	a := &IndexController{
		authService:        authService,
		userService:        userService,
		offerLetterService: offerLetterService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.POST("/register", a.register)
}

// login authenticates the actor and creates the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid login data")
		return
	}
	if form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "email and password are required")
		return
	}

	user, err := a.authService.Login(form.Email, form.Password)
	if err != nil {
		logger.Warningf("failed login for %q from %s", form.Email, getRemoteIp(c))
		jsonMsg(c, "login", err)
		return
	}

	if err := session.SetMaxAge(c, int(service.SessionMaxAge.Seconds())); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		jsonMsg(c, "unable to save session", err)
		return
	}
	jsonMsgObj(c, "welcome back, "+user.Name, user, nil)
}

// logout discards the session unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out [%s]", user.Email, user.Token)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	jsonMsg(c, "logged out", nil)
}

// register creates a new user from the multipart registration form. The
// offer letter PDF is required and is stored under a key derived from the
// email, overwriting any previous upload.
func (a *IndexController) register(c *gin.Context) {
	var form model.User
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid registration data")
		return
	}

	fileHeader, err := c.FormFile("offer_letter")
	if err != nil {
		jsonMsg(c, "offer letter upload is required", service.ErrValidation)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		jsonMsg(c, "offer letter", err)
		return
	}
	blob, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		jsonMsg(c, "offer letter", err)
		return
	}

	form.OfferLetter = a.offerLetterService.PathFor(form.Email)
	if err := a.userService.Register(form); err != nil {
		jsonMsg(c, "registration", err)
		return
	}
	if _, err := a.offerLetterService.Save(form.Email, blob); err != nil {
		jsonMsg(c, "offer letter", err)
		return
	}
	jsonMsg(c, "registration successful, please log in", nil)
}
