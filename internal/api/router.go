package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Crawls pace themselves and may retry with backoff, so the request
	// budget has to cover several slow attempts.
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/metrics", promhttp.Handler().(http.HandlerFunc))
	r.Get("/api/health", s.handleHealthCheck)

	r.Route("/api/trending", func(r chi.Router) {
		r.Get("/", s.handleTrending)
		r.Get("/languages/supported", s.handleSupportedLanguages)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/{language}", s.handleTrendingByLanguage)
	})

	return r
}
