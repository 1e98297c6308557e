package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/web/service"
)

// PanelController groups everything behind authentication: the issue
// workflow, the help-request log, and the intern views.
type PanelController struct {
	BaseController

	issue *IssueController
	help  *HelpController
	users *UserAdminController
}

func NewPanelController(g *gin.RouterGroup, issueService *service.IssueService, helpService *service.HelpService, userService *service.UserService, offerLetterService *service.OfferLetterService) *PanelController {
	a := &PanelController{}
	g = g.Group("/panel/api")
	g.Use(a.checkLogin)

	a.issue = NewIssueController(g, issueService)
	a.help = NewHelpController(g, helpService)
	a.users = NewUserAdminController(g, userService, offerLetterService)
	return a
}
