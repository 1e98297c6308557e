package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/middleware"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// RaiseIssueForm represents the issue creation request.
type RaiseIssueForm struct {
	Title       string           `json:"title" form:"title"`
	Description string           `json:"description" form:"description"`
	Difficulty  model.Difficulty `json:"difficulty" form:"difficulty"`
}

// IssueController exposes the issue lifecycle: browse, raise, claim,
// merge-request, complete, and the insight aggregates.
type IssueController struct {
	issueService *service.IssueService
}

func NewIssueController(g *gin.RouterGroup, issueService *service.IssueService) *IssueController {
	a := &IssueController{issueService: issueService}
	a.initRouter(g)
	return a
}

func (a *IssueController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/issue")

	g.GET("/list", a.list)
	g.GET("/mine", a.listMine)
	g.GET("/insights", a.insights)
	g.POST("/raise", middleware.RoleRequired(model.RoleAdmin, model.RoleTechLead), a.create)
	g.POST("/claim/:id", middleware.RoleRequired(model.RoleTechLead, model.RoleAIDeveloper), a.claim)
	g.POST("/mergeRequest/:id", middleware.RoleRequired(model.RoleTechLead), a.submitMergeRequest)
	g.POST("/complete/:id", middleware.RoleRequired(model.RoleAdmin, model.RoleTechLead), a.complete)
}

// list returns issues matching the dashboard filters: status, difficulty
// subset, title substring, assignee, and newest-first ordering.
func (a *IssueController) list(c *gin.Context) {
	filter := service.IssueFilter{
		Status:        model.Status(c.Query("status")),
		AssignedTo:    c.Query("assignedTo"),
		TitleContains: c.Query("title"),
		Newest:        c.Query("newest") == "true",
	}
	for _, d := range c.QueryArray("difficulty") {
		filter.Difficulties = append(filter.Difficulties, model.Difficulty(d))
	}
	issues, err := a.issueService.List(filter)
	jsonObj(c, issues, err)
}

// listMine returns the issues claimed by the session actor.
func (a *IssueController) listMine(c *gin.Context) {
	user := session.GetLoginUser(c)
	issues, err := a.issueService.List(service.IssueFilter{AssignedTo: user.AssignedLabel()})
	jsonObj(c, issues, err)
}

// insights returns the aggregate counts behind the dashboard metrics; with
// ?mine=true only the actor's own issues are counted.
func (a *IssueController) insights(c *gin.Context) {
	assignedTo := ""
	if c.Query("mine") == "true" {
		assignedTo = session.GetLoginUser(c).AssignedLabel()
	}
	insights, err := a.issueService.GetInsights(assignedTo)
	jsonObj(c, insights, err)
}

func (a *IssueController) create(c *gin.Context) {
	var form RaiseIssueForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid issue data")
		return
	}
	user := session.GetLoginUser(c)
	issue, err := a.issueService.Create(user, form.Title, form.Description, form.Difficulty)
	jsonMsgObj(c, "issue raised", issue, err)
}

func (a *IssueController) claim(c *gin.Context) {
	a.transition(c, a.issueService.Claim, "issue claimed")
}

func (a *IssueController) submitMergeRequest(c *gin.Context) {
	a.transition(c, a.issueService.SubmitMergeRequest, "merge request submitted")
}

func (a *IssueController) complete(c *gin.Context) {
	a.transition(c, a.issueService.Complete, "issue completed")
}

func (a *IssueController) transition(c *gin.Context, step func(*session.User, int) (*model.Issue, error), msg string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid issue id")
		return
	}
	user := session.GetLoginUser(c)
	issue, err := step(user, id)
	if err != nil {
		jsonMsg(c, msg, err)
		return
	}
	jsonMsgObj(c, msg, issue, nil)
}
