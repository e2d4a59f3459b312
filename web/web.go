// Package web provides the FutureCast HTTP server: routing, sessions, metrics and the
// scheduled forecast regeneration.
package web

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/staking"
	"github.com/futurecast/futurecast/util/common"
	"github.com/futurecast/futurecast/util/metrics"
	"github.com/futurecast/futurecast/util/random"
	"github.com/futurecast/futurecast/web/controller"
	"github.com/futurecast/futurecast/web/job"
	"github.com/futurecast/futurecast/web/middleware"
	"github.com/futurecast/futurecast/web/service"
	"github.com/futurecast/futurecast/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the FutureCast web server with its controllers, services and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index    *controller.IndexController
	forecast *controller.ForecastController
	premium  *controller.PremiumController

	userService     *service.UserService
	stakeService    *service.StakeService
	forecastService *service.ForecastService
	seedService     *service.SeedService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server whose stake checks go through reader. A nil reader disables the
// ledger and every user is at stake level 0.
func NewServer(reader staking.StakeReader) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	stakeService := service.NewStakeService(reader)
	return &Server{
		userService:     &service.UserService{},
		stakeService:    stakeService,
		forecastService: service.NewForecastService(stakeService),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// NewStakeReader dials the configured RPC endpoint. It returns nil, nil when no endpoint is
// configured.
func NewStakeReader(ctx context.Context) (staking.StakeReader, error) {
	chain := config.GetChainConfig()
	if chain.RPCURL == "" {
		logger.Notice("no RPC endpoint configured, stake levels are fixed at 0")
		return nil, nil
	}
	client, err := staking.Dial(ctx, chain.RPCURL)
	if err != nil {
		return nil, err
	}
	return staking.NewStakeReader(staking.Config{
		TokenAddress:   chain.TokenAddress,
		StakingAddress: chain.StakingAddress,
	}, client)
}

func (s *Server) sessionSecret() []byte {
	secret := config.GetSessionSecret()
	if secret == "" {
		logger.Warning("FUTURECAST_SESSION_SECRET is not set, sessions will not survive a restart")
		secret = random.Seq(32)
	}
	return []byte(secret)
}

// initRouter initializes Gin, registers middleware and controllers and returns the engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.MetricsMiddleware())

	store := cookie.NewStore(s.sessionSecret())
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(session.CookieName, store))

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
	))

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	g := engine.Group("/")
	api := engine.Group("/api")
	s.index = controller.NewIndexController(g, s.userService)
	s.forecast = controller.NewForecastController(g, api, s.forecastService, s.stakeService)
	s.premium = controller.NewPremiumController(g, s.forecastService, s.stakeService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules background jobs.
func (s *Server) startTask() error {
	spec := config.GetRefreshCron()
	if spec == "" {
		return nil
	}
	seedService, err := service.NewSeedServiceFromConfig(s.ctx, s.forecastService)
	if err != nil {
		return err
	}
	s.seedService = seedService
	if _, err := s.cron.AddJob(spec, job.NewGenerateForecastsJob(s.ctx, s.seedService)); err != nil {
		return common.NewErrorf("invalid FUTURECAST_REFRESH_CRON %q: %v", spec, err)
	}
	logger.Infof("forecast regeneration scheduled at %s", spec)
	return nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithLocation(time.Local))
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile := config.GetCertFile()
	keyFile := config.GetKeyFile()
	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return s.startTask()
}

// Stop gracefully shuts down the web server and cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2, err3 error
	if s.seedService != nil {
		err3 = s.seedService.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	if errors.Is(err2, net.ErrClosed) {
		err2 = nil
	}
	return common.Combine(err1, err2, err3)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
