package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/user/trending-service/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		TrendingURL:    baseURL + "/trending",
		RequestTimeout: 5,
		MaxRetries:     1,
		RetryBaseDelay: 0,
		MinDelay:       0,
		MaxDelay:       0,
	}
}

func newTestCrawler(t *testing.T, baseURL string) *Crawler {
	t.Helper()
	c, err := New(testConfig(baseURL), newTestMetrics(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build crawler: %v", err)
	}
	return c
}

func TestCrawler(t *testing.T) {
	t.Parallel()

	t.Run("builds language and since into the URL", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			mu.Unlock()
			w.Write([]byte(page(article("/golang/go", "", "", "", "1", "1", ""))))
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		if _, err := c.FetchTrending(context.Background(), "Go", "weekly", 10); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if gotPath != "/trending/go" {
			t.Errorf("path = %q, want /trending/go (language must be lower-cased)", gotPath)
		}
		if gotQuery != "since=weekly" {
			t.Errorf("query = %q, want since=weekly", gotQuery)
		}
	})

	t.Run("truncates to limit in document order", func(t *testing.T) {
		t.Parallel()

		articles := make([]string, 20)
		for i := range articles {
			articles[i] = article(fmt.Sprintf("/owner%d/repo%d", i, i), "", "", "", "1", "1", "")
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(page(articles...)))
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		result, err := c.FetchTrending(context.Background(), "", "daily", 5)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if result.Degraded {
			t.Fatal("result should not be degraded")
		}
		if len(result.Repositories) != 5 {
			t.Fatalf("expected 5 repositories, got %d", len(result.Repositories))
		}
		for i, r := range result.Repositories {
			want := fmt.Sprintf("owner%d/repo%d", i, i)
			if r.Name != want {
				t.Errorf("repositories[%d] = %q, want %q", i, r.Name, want)
			}
		}
	})

	t.Run("fewer entries than limit is valid", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(page(article("/only/one", "", "", "", "1", "1", ""))))
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		result, err := c.FetchTrending(context.Background(), "", "daily", 25)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if len(result.Repositories) != 1 {
			t.Errorf("expected 1 repository, got %d", len(result.Repositories))
		}
	})

	t.Run("changed markup yields degraded empty result", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body><div class="redesigned">no articles</div></body></html>`))
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		result, err := c.FetchTrending(context.Background(), "", "daily", 25)
		if err != nil {
			t.Fatalf("structural drift must not be a hard error: %v", err)
		}
		if !result.Degraded {
			t.Error("expected degraded result")
		}
		if len(result.Repositories) != 0 {
			t.Errorf("expected empty list, got %d entries", len(result.Repositories))
		}
	})

	t.Run("exhausted retries surface a hard error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		if _, err := c.FetchTrending(context.Background(), "", "daily", 25); err == nil {
			t.Fatal("expected hard error after exhausted retries")
		}
	})

	t.Run("probe reports reachable upstream", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		c := newTestCrawler(t, server.URL)
		probe := c.Probe(context.Background())
		if !probe.Reachable {
			t.Errorf("expected reachable, got detail %q", probe.Detail)
		}
	})

	t.Run("probe never fails hard", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		c := newTestCrawler(t, server.URL)
		probe := c.Probe(context.Background())
		if probe.Reachable {
			t.Error("expected unreachable")
		}
		if probe.Detail == "" {
			t.Error("expected a failure detail")
		}
	})

	t.Run("supported languages catalog is fixed", func(t *testing.T) {
		t.Parallel()

		c := newTestCrawler(t, "https://github.com")
		langs := c.SupportedLanguages()
		if len(langs) == 0 {
			t.Fatal("catalog must not be empty")
		}
		found := false
		for _, l := range langs {
			if l == "go" {
				found = true
			}
			if l != strings.ToLower(l) {
				t.Errorf("catalog entry %q not lower-cased", l)
			}
		}
		if !found {
			t.Error(`catalog should contain "go"`)
		}

		// Callers must not be able to mutate the catalog.
		langs[0] = "mutated"
		if c.SupportedLanguages()[0] == "mutated" {
			t.Error("catalog leaked internal slice")
		}
	})
}
