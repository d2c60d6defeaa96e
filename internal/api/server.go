package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/config"
	"github.com/user/trending-service/internal/domain"
)

// TrendingService is the crawl facade surface the HTTP layer depends on.
type TrendingService interface {
	FetchTrending(ctx context.Context, language, since string, limit int) (domain.Result, error)
	Probe(ctx context.Context) domain.ProbeResult
	SupportedLanguages() []string
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	trending   TrendingService
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, svc TrendingService, l *zap.Logger) *Server {
	s := &Server{
		config:   cfg,
		trending: svc,
		logger:   l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
