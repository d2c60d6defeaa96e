package domain

import "time"

// Repository holds one extracted entry from the trending page.
type Repository struct {
	Name          string    `json:"name"`
	Owner         string    `json:"owner"`
	RepoName      string    `json:"repo_name"`
	URL           string    `json:"url"`
	Description   string    `json:"description,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	Language      string    `json:"language,omitempty"`
	LanguageColor string    `json:"language_color,omitempty"`
	StarsToday    int       `json:"stars_today"`
	PeriodStars   int       `json:"period_stars"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	CrawledAt     time.Time `json:"crawled_at"`
}

// Result is the outcome of one crawl. Degraded is set when the page fetched
// fine but the expected repository list markup was missing, so an empty
// Repositories slice can be told apart from an actually empty ranking.
type Result struct {
	Repositories []Repository
	Degraded     bool
}

// ProbeResult reports whether the upstream site answered a single request.
type ProbeResult struct {
	Reachable bool   `json:"reachable"`
	Detail    string `json:"detail,omitempty"`
}

// RefreshRequest is the payload for the manual refresh endpoint.
type RefreshRequest struct {
	Language string `json:"language,omitempty"`
	Since    string `json:"since,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// TrendingResponse wraps a repository list with request metadata.
type TrendingResponse struct {
	Success      bool         `json:"success"`
	Repositories []Repository `json:"repositories"`
	TotalCount   int          `json:"total_count"`
	Language     string       `json:"language,omitempty"`
	Since        string       `json:"since"`
	CrawledAt    time.Time    `json:"crawled_at"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status           string    `json:"status"`
	GitHubAccessible bool      `json:"github_accessible"`
	Detail           string    `json:"detail,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
