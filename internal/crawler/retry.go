package crawler

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/monitoring"
)

// Jitter scales a backoff delay; the production policy is uniform [0.5, 1.5].
type Jitter func() float64

// UniformJitter returns a factor drawn uniformly from [0.5, 1.5].
func UniformJitter() float64 {
	return 0.5 + rand.Float64()
}

// Retrier wraps a Fetcher with bounded retry and exponential backoff.
type Retrier struct {
	fetcher     *Fetcher
	maxAttempts int
	baseDelay   time.Duration
	jitter      Jitter
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

func NewRetrier(fetcher *Fetcher, maxAttempts int, baseDelay time.Duration, jitter Jitter, m *monitoring.Metrics, logger *zap.Logger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if jitter == nil {
		jitter = UniformJitter
	}
	return &Retrier{
		fetcher:     fetcher,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		jitter:      jitter,
		metrics:     m,
		logger:      logger,
	}
}

// Fetch attempts the URL up to maxAttempts times. Between attempts it sleeps
// baseDelay * 2^attempt scaled by jitter. The last attempt's error is
// returned once the budget is spent.
func (r *Retrier) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		body, err := r.fetcher.FetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", lastErr
		}
		if attempt == r.maxAttempts-1 {
			break
		}

		backoff := time.Duration(float64(r.baseDelay) * math.Pow(2, float64(attempt)) * r.jitter())
		r.logger.Warn("fetch attempt failed, backing off",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", r.maxAttempts),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		r.metrics.IncRetriesTotal()

		if err := sleepCtx(ctx, backoff); err != nil {
			return "", lastErr
		}
	}

	r.logger.Error("fetch failed after all attempts",
		zap.String("url", url),
		zap.Int("attempts", r.maxAttempts),
		zap.Error(lastErr),
	)
	return "", lastErr
}
