package crawler

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/user/trending-service/internal/domain"
)

var (
	languageColorRe = regexp.MustCompile(`background-color:\s*([^;]+)`)
	periodStarsRe   = regexp.MustCompile(`([\d,]+)\s+stars?\s+(?:today|this week|this month)`)
)

// Extractor turns a trending page document into repository records. Each
// entry is parsed independently: a malformed entry is skipped, never fatal.
type Extractor struct {
	baseURL *url.URL
	logger  *zap.Logger
}

func NewExtractor(baseURL string, logger *zap.Logger) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{baseURL: base, logger: logger}, nil
}

// Extract returns the records in document order. ok is false when the
// repository list container is missing entirely, which usually means the
// upstream markup changed shape.
func (e *Extractor) Extract(htmlContent string) (repos []domain.Repository, ok bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, false, err
	}

	articles := doc.Find("article.Box-row")
	if articles.Length() == 0 {
		e.logger.Warn("no repository entries found, page structure may have changed")
		return []domain.Repository{}, false, nil
	}

	repos = make([]domain.Repository, 0, articles.Length())
	articles.Each(func(i int, article *goquery.Selection) {
		repo, entryOK := e.extractOne(article)
		if !entryOK {
			e.logger.Warn("skipping malformed trending entry", zap.Int("index", i))
			return
		}
		repos = append(repos, repo)
	})

	return repos, true, nil
}

func (e *Extractor) extractOne(article *goquery.Selection) (domain.Repository, bool) {
	var repo domain.Repository

	link := article.Find("h2.h3.lh-condensed a").First()
	if link.Length() == 0 {
		// Newer markup drops the .h3 class from the heading.
		link = article.Find("h2 a").First()
	}
	href, exists := link.Attr("href")
	repoPath := strings.Trim(strings.TrimSpace(href), "/")
	if !exists || repoPath == "" {
		return repo, false
	}

	parts := strings.Split(repoPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return repo, false
	}

	repo.Owner = parts[0]
	repo.RepoName = parts[1]
	repo.Name = repoPath
	repo.URL = e.resolve("/" + repoPath)
	repo.Description = strings.TrimSpace(article.Find("p.col-9").First().Text())

	lang := article.Find(`span[itemprop="programmingLanguage"]`).First()
	if lang.Length() > 0 {
		repo.Language = strings.TrimSpace(lang.Text())
		colorMarker := article.Find("span.repo-language-color").First()
		if style, hasStyle := colorMarker.Attr("style"); hasStyle {
			if m := languageColorRe.FindStringSubmatch(style); m != nil {
				repo.LanguageColor = strings.TrimSpace(m[1])
			}
		}
	}

	article.Find("a.Link--muted").Each(func(_ int, s *goquery.Selection) {
		statHref, _ := s.Attr("href")
		switch {
		case strings.Contains(statHref, "/stargazers"):
			repo.Stars = parseCount(s.Text())
		case strings.Contains(statHref, "/forks"):
			repo.Forks = parseCount(s.Text())
		}
	})

	// The counter keeps a "stars today" style label no matter which time
	// range was requested; take whatever label the page rendered.
	periodText := strings.TrimSpace(article.Find("span.d-inline-block.float-sm-right").First().Text())
	if m := periodStarsRe.FindStringSubmatch(periodText); m != nil {
		repo.StarsToday = parseCount(m[1])
	}
	repo.PeriodStars = repo.StarsToday

	if src, hasSrc := article.Find("img.avatar").First().Attr("src"); hasSrc && src != "" {
		repo.AvatarURL = e.resolve(src)
	}

	repo.CrawledAt = time.Now()
	return repo, true
}

// resolve joins a possibly relative path against the base address.
func (e *Extractor) resolve(ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return e.baseURL.ResolveReference(refURL).String()
}
