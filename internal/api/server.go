// Package api serves the store over an authenticated JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Analyzer runs the strategic analysis of a content item.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, id string) (string, error)
}

type Config struct {
	Store *store.Store
	// Analyzer may be nil when no LLM key is configured.
	Analyzer Analyzer
	// UserID is the only subject tokens are issued for.
	UserID       string
	JWTSecret    []byte
	PasswordHash []byte
	TokenTTL     time.Duration
	AllowOrigins []string
}

type Server struct {
	cfg    Config
	store  *store.Store
	router *gin.Engine
}

func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{cfg: cfg, store: cfg.Store}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-New-Token"},
	}))

	r.POST("/api/login", s.login)

	api := r.Group("/api", s.jwtAuth())
	api.GET("/state", s.getState)

	api.GET("/stats/dashboard", s.dashboardStats)
	api.GET("/stats/reading", s.readingStats)
	api.GET("/stats/meditation", s.meditationStats)
	api.GET("/stats/coding", s.codingStats)

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.addTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.POST("/tasks/:id/toggle", s.toggleTask)
	api.DELETE("/tasks/:id", s.deleteTask)

	api.GET("/goals", s.listGoals)
	api.POST("/goals", s.addGoal)
	api.PUT("/goals/:id/progress", s.goalProgress)
	api.DELETE("/goals/:id", s.deleteGoal)

	api.GET("/notes", s.listNotes)
	api.POST("/notes", s.addNote)
	api.PATCH("/notes/:id", s.updateNote)
	api.DELETE("/notes/:id", s.deleteNote)

	api.GET("/books", s.listBooks)
	api.POST("/books", s.addBook)
	api.PATCH("/books/:id", s.updateBook)
	api.DELETE("/books/:id", s.deleteBook)
	api.POST("/books/:id/sessions", s.addReadingSession)

	api.GET("/connections", s.listConnections)
	api.POST("/connections", s.addConnection)
	api.PATCH("/connections/:id", s.updateConnection)
	api.DELETE("/connections/:id", s.deleteConnection)
	api.POST("/connections/:id/outcomes", s.addOutcome)

	api.GET("/content", s.listContent)
	api.POST("/content", s.addContent)
	api.PATCH("/content/:id", s.updateContent)
	api.DELETE("/content/:id", s.deleteContent)
	api.POST("/content/:id/analyze", s.analyzeContent)

	api.POST("/protection/check", s.checkContent)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
