// Package api exposes the habit operations over HTTP as JSON endpoints.
// Mutation endpoints answer 200 with an errors list for expected failures;
// only transport problems and storage faults produce non-200 statuses.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/logger"
)

// Config holds the HTTP server settings
type Config struct {
	Addr       string
	CORSOrigin string
	Debug      bool
}

// Server routes HTTP requests to the habit service
type Server struct {
	svc    *habits.Service
	engine *gin.Engine
	addr   string
}

// NewServer builds the gin engine and registers all routes
func NewServer(svc *habits.Service, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultListenAddr
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = constants.DefaultCORSOrigin
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{svc: svc, engine: engine, addr: cfg.Addr}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/time", s.serverTime)

		api.GET("/habits", s.listHabits)
		api.POST("/habits", s.createHabit)
		api.GET("/habits/:externalID", s.getHabit)
		api.PATCH("/habits/:externalID", s.updateHabit)
		api.DELETE("/habits/:externalID", s.deleteHabit)
		api.POST("/habits/:externalID/toggle", s.toggleCompletion)
		api.PUT("/habits/:externalID/completion", s.updateCompletion)
		api.GET("/habits/:externalID/month", s.monthData)
		api.GET("/habits/:externalID/stats", s.habitStats)

		api.GET("/settings", s.getSettings)
		api.PATCH("/settings", s.updateSettings)
	}
}

// Run starts the server and blocks until it exits
func (s *Server) Run() error {
	logger.Info("listening", "addr", s.addr)
	return s.engine.Run(s.addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
