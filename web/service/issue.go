package service

import (
	"errors"
	"math"
	"strings"

	"github.com/swecha/intern-portal/config"
	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage"
	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/session"
)

// IssueService owns the issue lifecycle. Status only ever advances along
// Open -> In Progress -> Merge Request Submitted -> Completed; no transition
// skips a state and none goes back.
type IssueService struct {
	issues *storage.Table[model.Issue]
}

func NewIssueService() *IssueService {
	return &IssueService{
		issues: storage.NewTable[model.Issue](config.GetIssuesPath()),
	}
}

// CanTransition is the one source of truth for the role-gated state machine.
// Dashboards and controllers must not re-derive these rules.
func CanTransition(actor *session.User, issue *model.Issue, from model.Status, to model.Status) bool {
	if actor == nil || issue == nil || issue.Status != from {
		return false
	}
	switch {
	case from == model.StatusOpen && to == model.StatusInProgress:
		if actor.Role != model.RoleAIDeveloper && actor.Role != model.RoleTechLead {
			return false
		}
		// Hard precondition: claimable only while unassigned.
		return strings.TrimSpace(issue.AssignedTo) == ""
	case from == model.StatusInProgress && to == model.StatusMergeRequest:
		return actor.Role == model.RoleTechLead && stewards(actor, issue)
	case from == model.StatusMergeRequest && to == model.StatusCompleted:
		if actor.Role == model.RoleAdmin {
			return true
		}
		return actor.Role == model.RoleTechLead && stewards(actor, issue)
	}
	return false
}

// stewards reports whether a Tech Lead may advance this issue: either they
// claimed it themselves, or an AI Developer did and the lead reviews the
// work on their behalf.
func stewards(actor *session.User, issue *model.Issue) bool {
	if issue.AssignedTo == actor.AssignedLabel() {
		return true
	}
	return strings.HasPrefix(issue.AssignedTo, string(model.RoleAIDeveloper)+" - ")
}

// IssueFilter selects issues for the dashboard views. Zero values mean "no
// constraint"; Newest reverses insertion order.
type IssueFilter struct {
	Status        model.Status
	Difficulties  []model.Difficulty
	AssignedTo    string
	TitleContains string
	Newest        bool
}

func (f *IssueFilter) matches(issue *model.Issue) bool {
	if f.Status != "" && issue.Status != f.Status {
		return false
	}
	if len(f.Difficulties) > 0 {
		found := false
		for _, d := range f.Difficulties {
			if issue.Difficulty == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.AssignedTo != "" && issue.AssignedTo != f.AssignedTo {
		return false
	}
	if f.TitleContains != "" &&
		!strings.Contains(strings.ToLower(issue.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	return true
}

// List returns matching issues in store order, or reversed when Newest.
func (s *IssueService) List(filter IssueFilter) ([]model.Issue, error) {
	issues, err := s.issues.Load()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Issue, 0, len(issues))
	for i := range issues {
		if filter.matches(&issues[i]) {
			matched = append(matched, issues[i])
		}
	}
	if filter.Newest {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return matched, nil
}

func (s *IssueService) Get(id int) (*model.Issue, error) {
	issues, err := s.issues.Load()
	if err != nil {
		return nil, err
	}
	for i := range issues {
		if issues[i].Id == id {
			return &issues[i], nil
		}
	}
	return nil, ErrIssueNotFound
}

// Create raises a new Open issue. The id is max(existing)+1, computed inside
// the same locked mutation that persists the row, so concurrent creations
// never hand out the same id.
func (s *IssueService) Create(actor *session.User, title string, description string, difficulty model.Difficulty) (*model.Issue, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleTechLead {
		return nil, ErrForbiddenTransition
	}
	if strings.TrimSpace(title) == "" || !model.ValidDifficulty(difficulty) {
		return nil, ErrValidation
	}

	submitter := actor.Name
	if actor.Role == model.RoleAdmin {
		submitter = "Admin"
	}
	issue := model.Issue{
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		Status:      model.StatusOpen,
		AssignedTo:  "",
		Submitter:   submitter,
	}
	err := s.issues.Mutate(func(issues []model.Issue) ([]model.Issue, error) {
		issue.Id = 1
		for i := range issues {
			if issues[i].Id >= issue.Id {
				issue.Id = issues[i].Id + 1
			}
		}
		return append(issues, issue), nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("issue #%d raised by %s: %s", issue.Id, submitter, title)
	return &issue, nil
}

// Claim moves an Open, unassigned issue to In Progress and records the
// claiming actor's label. The unassigned precondition is re-checked inside
// the store mutation, so two claims racing over one snapshot resolve to at
// most one winner.
func (s *IssueService) Claim(actor *session.User, id int) (*model.Issue, error) {
	label := actor.AssignedLabel()
	issue, err := s.transition(actor, id, model.StatusOpen, model.StatusInProgress, func(issue *model.Issue) {
		issue.AssignedTo = label
	})
	if errors.Is(err, ErrForbiddenTransition) {
		if current, gerr := s.Get(id); gerr == nil &&
			strings.TrimSpace(current.AssignedTo) != "" {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	logger.Infof("issue #%d claimed by %s", id, label)
	return issue, nil
}

// SubmitMergeRequest moves an In Progress issue to Merge Request Submitted.
func (s *IssueService) SubmitMergeRequest(actor *session.User, id int) (*model.Issue, error) {
	issue, err := s.transition(actor, id, model.StatusInProgress, model.StatusMergeRequest, nil)
	if err != nil {
		return nil, err
	}
	logger.Infof("issue #%d merge request submitted by %s", id, actor.AssignedLabel())
	return issue, nil
}

// Complete moves a Merge Request Submitted issue to Completed. Any other
// starting status is rejected.
func (s *IssueService) Complete(actor *session.User, id int) (*model.Issue, error) {
	issue, err := s.transition(actor, id, model.StatusMergeRequest, model.StatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	logger.Infof("issue #%d completed by %s", id, actor.AssignedLabel())
	return issue, nil
}

// transition applies one state-machine step under the table lock. The
// CanTransition check runs inside the update predicate, so stale caller
// snapshots cannot double-apply a step.
func (s *IssueService) transition(actor *session.User, id int, from model.Status, to model.Status, apply func(*model.Issue)) (*model.Issue, error) {
	matched, err := s.issues.Update(
		func(issue *model.Issue) bool {
			return issue.Id == id && CanTransition(actor, issue, from, to)
		},
		func(issue *model.Issue) {
			issue.Status = to
			if apply != nil {
				apply(issue)
			}
		})
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		if _, gerr := s.Get(id); gerr != nil {
			return nil, gerr
		}
		return nil, ErrForbiddenTransition
	}
	return s.Get(id)
}

// Insights is the aggregate the dashboard metrics and charts are built from.
type Insights struct {
	Total          int                      `json:"total"`
	ByStatus       map[model.Status]int     `json:"byStatus"`
	ByDifficulty   map[model.Difficulty]int `json:"byDifficulty"`
	CompletionRate float64                  `json:"completionRate"`
}

// GetInsights aggregates over all issues, or over one actor's issues when
// assignedTo is a non-empty label.
func (s *IssueService) GetInsights(assignedTo string) (*Insights, error) {
	issues, err := s.issues.Load()
	if err != nil {
		return nil, err
	}
	insights := &Insights{
		ByStatus:     make(map[model.Status]int),
		ByDifficulty: make(map[model.Difficulty]int),
	}
	for i := range issues {
		if assignedTo != "" && issues[i].AssignedTo != assignedTo {
			continue
		}
		insights.Total++
		insights.ByStatus[issues[i].Status]++
		insights.ByDifficulty[issues[i].Difficulty]++
	}
	if insights.Total > 0 {
		rate := float64(insights.ByStatus[model.StatusCompleted]) / float64(insights.Total) * 100
		insights.CompletionRate = math.Round(rate*100) / 100
	}
	return insights, nil
}
