package job

import (
	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/util/common"
	"github.com/swecha/intern-portal/web/service"
)

// ReportJob logs a daily snapshot of the issue pipeline and the help queue.
type ReportJob struct {
	issueService *service.IssueService
	helpService  *service.HelpService
}

func NewReportJob(issueService *service.IssueService, helpService *service.HelpService) *ReportJob {
	return &ReportJob{
		issueService: issueService,
		helpService:  helpService,
	}
}

func (j *ReportJob) Run() {
	defer common.Recover("report job")

	insights, err := j.issueService.GetInsights("")
	if err != nil {
		logger.Warning("report job: issue insights:", err)
		return
	}
	requests, err := j.helpService.List()
	if err != nil {
		logger.Warning("report job: help requests:", err)
		return
	}
	logger.Infof("daily report: %d issues (%d open, %d in progress, %d awaiting review, %d completed), %d help requests",
		insights.Total,
		insights.ByStatus[model.StatusOpen],
		insights.ByStatus[model.StatusInProgress],
		insights.ByStatus[model.StatusMergeRequest],
		insights.ByStatus[model.StatusCompleted],
		len(requests))
}
