package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CrawlsTotal   *prometheus.CounterVec
	RetriesTotal  *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec
	CrawlDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the metrics on a specific registry. Tests use it
// with a fresh registry so repeated construction does not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CrawlsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trending_crawls_total",
			Help: "The total number of crawl operations by outcome",
		}, []string{"outcome"}), // 'success', 'degraded', 'failure'
		RetriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trending_fetch_retries_total",
			Help: "The total number of fetch attempts that were retried",
		}, nil),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trending_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g. 'http_status', 'transport'
		CrawlDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trending_crawl_duration_seconds",
			Help:    "Time spent on the full fetch-and-extract pipeline",
			Buckets: prometheus.DefBuckets,
		}, nil),
	}
}

func (m *Metrics) IncCrawlsTotal(outcome string) {
	m.CrawlsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRetriesTotal() {
	m.RetriesTotal.WithLabelValues().Inc()
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *Metrics) ObserveCrawlDuration(seconds float64) {
	m.CrawlDuration.WithLabelValues().Observe(seconds)
}
