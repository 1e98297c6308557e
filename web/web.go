// Package web provides the web server for the intern portal: routing,
// session handling, and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/swecha/intern-portal/config"
	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/util/common"
	"github.com/swecha/intern-portal/web/controller"
	"github.com/swecha/intern-portal/web/job"
	"github.com/swecha/intern-portal/web/middleware"
	"github.com/swecha/intern-portal/web/service"
	"github.com/swecha/intern-portal/web/session"
)

// Server is the portal web server with its controllers, services, and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController

	userService        *service.UserService
	authService        *service.AuthService
	issueService       *service.IssueService
	helpService        *service.HelpService
	offerLetterService *service.OfferLetterService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	userService := service.NewUserService()
	return &Server{
		userService:        userService,
		authService:        service.NewAuthService(userService),
		issueService:       service.NewIssueService(),
		helpService:        service.NewHelpService(),
		offerLetterService: service.NewOfferLetterService(),
		ctx:                ctx,
		cancel:             cancel,
	}
}

// initRouter initializes Gin, registers middleware and controllers, and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	store := cookie.NewStore([]byte(config.GetSessionSecret()))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.SessionTimeout())

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.authService, s.userService, s.offerLetterService)
	s.panel = controller.NewPanelController(g, s.issueService, s.helpService, s.userService, s.offerLetterService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewReportJob(s.issueService, s.helpService))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", config.GetListen())
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
