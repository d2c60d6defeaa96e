package crawler

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/config"
	"github.com/user/trending-service/internal/domain"
	"github.com/user/trending-service/internal/monitoring"
)

// supportedLanguages is the fixed catalog offered by the languages endpoint.
// It is not scraped from the live page.
var supportedLanguages = []string{
	"python", "javascript", "java", "typescript", "c++", "c", "c#",
	"go", "rust", "php", "ruby", "swift", "kotlin", "dart", "scala",
	"r", "matlab", "shell", "powershell", "html", "css", "vue",
	"react", "angular", "node.js", "express", "django", "flask",
	"spring", "laravel", "rails", "asp.net",
}

// Crawler composes URL construction, retried fetching and record extraction
// into the single fetch-trending operation the API layer calls.
type Crawler struct {
	baseURL     string
	trendingURL string
	fetcher     *Fetcher
	retrier     *Retrier
	extractor   *Extractor
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

func New(cfg *config.Config, m *monitoring.Metrics, logger *zap.Logger) (*Crawler, error) {
	fetcher := NewFetcher(FetcherOptions{
		Timeout:  cfg.Timeout(),
		MinDelay: secs(cfg.MinDelay),
		MaxDelay: secs(cfg.MaxDelay),
	}, logger)

	retrier := NewRetrier(fetcher, cfg.MaxRetries, secs(cfg.RetryBaseDelay), nil, m, logger)

	extractor, err := NewExtractor(cfg.BaseURL, logger)
	if err != nil {
		return nil, err
	}

	return &Crawler{
		baseURL:     cfg.BaseURL,
		trendingURL: cfg.TrendingURL,
		fetcher:     fetcher,
		retrier:     retrier,
		extractor:   extractor,
		metrics:     m,
		logger:      logger,
	}, nil
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// FetchTrending crawls the trending page for the given language and time
// range and returns up to limit records in ranking order. A hard error means
// the page could not be fetched at all; a degraded result means the page came
// back but held no recognizable repository list.
func (c *Crawler) FetchTrending(ctx context.Context, language, since string, limit int) (domain.Result, error) {
	url := c.buildURL(language, since)
	c.logger.Info("crawling trending page",
		zap.String("url", url),
		zap.String("language", language),
		zap.String("since", since),
		zap.Int("limit", limit),
	)

	start := time.Now()
	defer func() {
		c.metrics.ObserveCrawlDuration(time.Since(start).Seconds())
	}()

	body, err := c.retrier.Fetch(ctx, url)
	if err != nil {
		c.metrics.IncCrawlsTotal("failure")
		c.metrics.IncErrorsTotal(errorType(err))
		return domain.Result{}, err
	}

	repos, structureOK, err := c.extractor.Extract(body)
	if err != nil {
		c.metrics.IncCrawlsTotal("failure")
		c.metrics.IncErrorsTotal("parse")
		return domain.Result{}, err
	}
	if !structureOK {
		c.metrics.IncCrawlsTotal("degraded")
		return domain.Result{Repositories: []domain.Repository{}, Degraded: true}, nil
	}

	if limit > 0 && len(repos) > limit {
		repos = repos[:limit]
	}

	c.logger.Info("crawl finished", zap.Int("repositories", len(repos)))
	c.metrics.IncCrawlsTotal("success")
	return domain.Result{Repositories: repos}, nil
}

// Probe issues one request against the base address with no retry. It never
// returns an error; failures come back as Reachable=false with a detail.
func (c *Crawler) Probe(ctx context.Context) domain.ProbeResult {
	if err := c.fetcher.Probe(ctx, c.baseURL); err != nil {
		return domain.ProbeResult{Reachable: false, Detail: err.Error()}
	}
	return domain.ProbeResult{Reachable: true}
}

// SupportedLanguages returns the fixed language catalog.
func (c *Crawler) SupportedLanguages() []string {
	langs := make([]string, len(supportedLanguages))
	copy(langs, supportedLanguages)
	return langs
}

func (c *Crawler) buildURL(language, since string) string {
	url := c.trendingURL
	if language != "" {
		url += "/" + strings.ToLower(language)
	}
	return url + "?since=" + since
}

func errorType(err error) string {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.StatusCode != 0 {
			return "http_status"
		}
		return "transport"
	}
	return "unknown"
}
