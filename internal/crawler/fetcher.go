package crawler

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/domain"
)

// userAgents is the pool a request's User-Agent is drawn from at random, so
// consecutive requests do not share an obvious automated fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// browserHeaders are sent with every request to look like a regular browser.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	// Accept-Encoding is left to the transport: setting it by hand turns
	// off net/http's transparent gzip decompression.
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Cache-Control":             "max-age=0",
}

// Pacer returns how long to wait before issuing a request.
type Pacer func() time.Duration

// AgentPicker returns the User-Agent string for one request.
type AgentPicker func() string

// Fetcher performs single paced page requests. Pacing and user-agent
// selection are injectable so tests can pin them down.
type Fetcher struct {
	client *http.Client
	pace   Pacer
	agent  AgentPicker
	logger *zap.Logger
}

// FetcherOptions configures a Fetcher. Zero-value Pace/Agent fall back to the
// randomized production policies.
type FetcherOptions struct {
	Timeout  time.Duration
	MinDelay time.Duration
	MaxDelay time.Duration
	Pace     Pacer
	Agent    AgentPicker
}

func NewFetcher(opts FetcherOptions, logger *zap.Logger) *Fetcher {
	pace := opts.Pace
	if pace == nil {
		pace = UniformPacer(opts.MinDelay, opts.MaxDelay)
	}
	agent := opts.Agent
	if agent == nil {
		agent = RandomAgent
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		pace:   pace,
		agent:  agent,
		logger: logger,
	}
}

// UniformPacer draws a delay uniformly from [min, max].
func UniformPacer(min, max time.Duration) Pacer {
	return func() time.Duration {
		if max <= min {
			return min
		}
		return min + time.Duration(rand.Int63n(int64(max-min)+1))
	}
}

// RandomAgent picks a user agent uniformly from the pool.
func RandomAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// FetchOnce performs one paced GET and returns the page body. A non-200
// status or transport failure comes back as a *domain.FetchError.
func (f *Fetcher) FetchOnce(ctx context.Context, url string) (string, error) {
	delay := f.pace()
	f.logger.Debug("pacing before request", zap.Duration("delay", delay), zap.String("url", url))
	if err := sleepCtx(ctx, delay); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", f.agent())

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}

	f.logger.Debug("page fetched", zap.String("url", url), zap.Int("bytes", len(body)))
	return string(body), nil
}

// Probe issues one GET with no pacing delay and discards the body. Used by
// the connectivity check, which must stay cheap.
func (f *Fetcher) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", f.agent())

	resp, err := f.client.Do(req)
	if err != nil {
		return &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
