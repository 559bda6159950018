// Package api provides the HTTP REST surface for ragtext
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ragtext/ragtext/pkg/chat"
	"github.com/ragtext/ragtext/pkg/config"
	"github.com/ragtext/ragtext/pkg/ingest"
	"github.com/ragtext/ragtext/pkg/interfaces"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

// Server is the API server instance
type Server struct {
	pipeline   *ingest.Pipeline
	chat       *chat.Service
	store      vectordb.VectorStore
	logger     interfaces.Logger
	router     *gin.Engine
	server     *http.Server
	host       string
	port       int
	dataDir    string
	collection string
}

// NewServer creates an API server wired to the ingestion pipeline, chat
// service, and vector store
func NewServer(cfg *config.Config, pipeline *ingest.Pipeline, chatService *chat.Service, store vectordb.VectorStore, logger interfaces.Logger) *Server {
	if cfg.LogLevel == "error" || cfg.LogLevel == "warn" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		pipeline:   pipeline,
		chat:       chatService,
		store:      store,
		logger:     logger,
		router:     gin.New(),
		host:       cfg.Host,
		port:       cfg.Port,
		dataDir:    cfg.DataDir,
		collection: cfg.Collection,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/ingest", s.handleIngest)
	s.router.POST("/search", s.handleSearch)
	s.router.POST("/chat", s.handleChat)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", map[string]interface{}{
		"addr": s.server.Addr,
		"mode": gin.Mode(),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
