package service

import (
	"strings"
	"time"

	"github.com/swecha/intern-portal/config"
	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage"
	"github.com/swecha/intern-portal/storage/model"
)

const helpTimestampLayout = "2006-01-02 15:04:05"

// HelpService is the append-only log of free-text help queries from
// developers to tech leads. Requests are never mutated or deleted, and any
// Tech Lead sees all of them.
type HelpService struct {
	requests *storage.Table[model.HelpRequest]
}

func NewHelpService() *HelpService {
	return &HelpService{
		requests: storage.NewTable[model.HelpRequest](config.GetHelpRequestsPath()),
	}
}

// Submit appends one request. A query that trims to nothing is rejected.
func (s *HelpService) Submit(email string, developer string, query string) (*model.HelpRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	request := model.HelpRequest{
		Email:     email,
		Developer: developer,
		Query:     query,
		Timestamp: time.Now().Format(helpTimestampLayout),
	}
	if err := s.requests.Append(request); err != nil {
		return nil, err
	}
	logger.Infof("help request from %s (%s)", developer, email)
	return &request, nil
}

// List returns every help request in submission order.
func (s *HelpService) List() ([]model.HelpRequest, error) {
	return s.requests.Load()
}
