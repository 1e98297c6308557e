package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/middleware"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// UserAdminController exposes the intern views: the admin sees everyone
// (optionally filtered by college), a tech lead sees the AI Developers of
// their own college. Admins can also pull offer letters and recent logs.
type UserAdminController struct {
	userService        *service.UserService
	offerLetterService *service.OfferLetterService
}

func NewUserAdminController(g *gin.RouterGroup, userService *service.UserService, offerLetterService *service.OfferLetterService) *UserAdminController {
	a := &UserAdminController{
		userService:        userService,
		offerLetterService: offerLetterService,
	}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	g.GET("/interns", middleware.RoleRequired(model.RoleAdmin, model.RoleTechLead), a.interns)
	g.GET("/colleges", middleware.RoleRequired(model.RoleAdmin), a.colleges)
	g.GET("/offerLetter/:email", middleware.RoleRequired(model.RoleAdmin), a.offerLetter)
	g.GET("/logs", middleware.RoleRequired(model.RoleAdmin), a.logs)
}

// interns is the role-scoped intern view.
func (a *UserAdminController) interns(c *gin.Context) {
	user := session.GetLoginUser(c)
	switch user.Role {
	case model.RoleAdmin:
		users, err := a.userService.GetUsersByCollege(c.Query("college"))
		jsonObj(c, users, err)
	default:
		developers, err := a.userService.GetDevelopersByCollege(user.College)
		jsonObj(c, developers, err)
	}
}

func (a *UserAdminController) colleges(c *gin.Context) {
	colleges, err := a.userService.GetColleges()
	jsonObj(c, colleges, err)
}

func (a *UserAdminController) offerLetter(c *gin.Context) {
	email := c.Param("email")
	blob, err := a.offerLetterService.Read(email)
	if err != nil {
		logger.Warning("offer letter read:", err)
		pureJsonMsg(c, http.StatusNotFound, false, "no offer letter on file")
		return
	}
	c.Data(http.StatusOK, "application/pdf", blob)
}

// logs returns recent buffered log lines for the admin view.
func (a *UserAdminController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
