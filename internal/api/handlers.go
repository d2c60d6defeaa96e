package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/trending-service/internal/domain"
)

const (
	defaultSince = "daily"
	defaultLimit = 25
	maxLimit     = 100
)

func validSince(since string) bool {
	return since == "daily" || since == "weekly" || since == "monthly"
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	s.serveTrending(w, r, language)
}

func (s *Server) handleTrendingByLanguage(w http.ResponseWriter, r *http.Request) {
	language := chi.URLParam(r, "language")
	s.serveTrending(w, r, language)
}

func (s *Server) serveTrending(w http.ResponseWriter, r *http.Request, language string) {
	since := r.URL.Query().Get("since")
	if since == "" {
		since = defaultSince
	}
	if !validSince(since) {
		s.respondWithError(w, http.StatusBadRequest, "since must be one of daily, weekly, monthly")
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}
	if limit < 1 || limit > maxLimit {
		s.respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	s.crawlAndRespond(w, r, language, since, limit)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	since := req.Since
	if since == "" {
		since = defaultSince
	}
	if !validSince(since) {
		s.respondWithError(w, http.StatusBadRequest, "since must be one of daily, weekly, monthly")
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > maxLimit {
		s.respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	s.crawlAndRespond(w, r, req.Language, since, limit)
}

func (s *Server) handleSupportedLanguages(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, s.trending.SupportedLanguages())
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	probe := s.trending.Probe(r.Context())

	resp := domain.HealthResponse{
		GitHubAccessible: probe.Reachable,
		Detail:           probe.Detail,
		Timestamp:        time.Now(),
	}
	if probe.Reachable {
		resp.Status = "healthy"
		s.respondWithJSON(w, http.StatusOK, resp)
		return
	}
	resp.Status = "unhealthy"
	s.respondWithJSON(w, http.StatusServiceUnavailable, resp)
}

func (s *Server) crawlAndRespond(w http.ResponseWriter, r *http.Request, language, since string, limit int) {
	result, err := s.trending.FetchTrending(r.Context(), language, since, limit)
	if err != nil {
		s.logger.Error("trending crawl failed",
			zap.String("language", language),
			zap.String("since", since),
			zap.Error(err),
		)
		s.respondWithError(w, http.StatusBadGateway, "Failed to fetch trending data")
		return
	}

	if result.Degraded {
		s.logger.Warn("trending crawl returned degraded result",
			zap.String("language", language),
			zap.String("since", since),
		)
	}

	s.respondWithJSON(w, http.StatusOK, domain.TrendingResponse{
		Success:      true,
		Repositories: result.Repositories,
		TotalCount:   len(result.Repositories),
		Language:     language,
		Since:        since,
		CrawledAt:    time.Now(),
	})
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]interface{}{"success": false, "error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
