package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/middleware"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// HelpRequestForm represents a developer's help query.
type HelpRequestForm struct {
	Query string `json:"query" form:"query"`
}

// HelpController exposes the help-request log: developers submit, tech leads
// read all of it.
type HelpController struct {
	helpService *service.HelpService
}

func NewHelpController(g *gin.RouterGroup, helpService *service.HelpService) *HelpController {
	a := &HelpController{helpService: helpService}
	a.initRouter(g)
	return a
}

func (a *HelpController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/help")

	g.POST("", middleware.RoleRequired(model.RoleAIDeveloper), a.submit)
	g.GET("", middleware.RoleRequired(model.RoleTechLead), a.list)
}

func (a *HelpController) submit(c *gin.Context) {
	var form HelpRequestForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid help request data")
		return
	}
	user := session.GetLoginUser(c)
	request, err := a.helpService.Submit(user.Email, user.Name, form.Query)
	jsonMsgObj(c, "your request has been sent to the tech leads", request, err)
}

func (a *HelpController) list(c *gin.Context) {
	requests, err := a.helpService.List()
	jsonObj(c, requests, err)
}
