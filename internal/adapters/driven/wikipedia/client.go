// Package wikipedia implements the encyclopedia port against the
// MediaWiki action API. One article search fans out into several API
// calls (open search, extract, parse, related fetches); every call
// flows through a shared rate limiter so the tool stays polite.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/logger"
	"github.com/draftlab/scriptforge/internal/normalisers/wikitext"
)

// DefaultAPIURL is the English Wikipedia action API endpoint.
const DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

// DefaultDelay is the default pause between API requests.
const DefaultDelay = 1 * time.Second

const userAgent = "scriptforge/1.0 (topic research tool)"

var wikiAnchor = regexp.MustCompile(`<a href="/wiki/([^"]+)"[^>]*>([^<]+)</a>`)

// Skip prefixes for non-article namespace links.
var skipNamespaces = []string{"category:", "file:", "template:", "help:", "portal:"}

// Config holds client configuration.
type Config struct {
	// APIURL overrides the action API endpoint. Used by tests.
	APIURL string

	// Delay is the pause between consecutive API requests.
	Delay time.Duration

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration
}

// Client fetches and extracts encyclopedia articles. It implements the
// Encyclopedia port. Extracted articles and dossiers are written to the
// article cache as a side effect of fetching.
type Client struct {
	httpClient *http.Client
	apiURL     string
	limiter    *rate.Limiter
	cache      driven.ArticleCache
}

var _ driven.Encyclopedia = (*Client)(nil)

// NewClient creates an encyclopedia client writing through to cache.
func NewClient(cache driven.ArticleCache, cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiURL:     cfg.APIURL,
		limiter:    rate.NewLimiter(rate.Every(cfg.Delay), 1),
		cache:      cache,
	}
}

// SearchArticle researches one topic end to end: open search for the
// best title, extract the page, resolve disambiguation, harvest related
// articles and derive key facts and sections. The main and related
// articles are persisted to the cache.
func (c *Client) SearchArticle(ctx context.Context, topic string) (*domain.ArticleRecord, error) {
	return c.searchArticle(ctx, topic, false)
}

// RefreshArticle re-fetches a topic and overwrites its cache files even
// when they already exist. This is the explicit escape hatch from the
// "file exists = never fetch" cache policy.
func (c *Client) RefreshArticle(ctx context.Context, topic string) (*domain.ArticleRecord, error) {
	return c.searchArticle(ctx, topic, true)
}

func (c *Client) searchArticle(ctx context.Context, topic string, force bool) (*domain.ArticleRecord, error) {
	titles, err := c.searchTitles(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("no articles found for %q: %w", topic, domain.ErrNotFound)
	}

	article, err := c.extractArticle(ctx, titles[0])
	if err != nil {
		return nil, err
	}

	if isDisambiguation(article) {
		logger.Debug("disambiguation page for %q, resolving", topic)
		article = c.resolveDisambiguation(ctx, article, topic)
	}

	related := c.relatedArticles(ctx, article, 2)

	// Thin articles get an extra related article so the dossier still
	// has enough material.
	if len(wikitext.StripHTML(article.BodyHTML)) < 1000 && len(related) == 2 {
		if extra := c.relatedArticles(ctx, article, 3); len(extra) > 2 {
			related = extra
		}
	}

	c.saveArticles(article, related, force)

	article.KeyFacts = extractKeyFacts(article.BodyHTML, article.Summary)
	article.Sections = extractSections(article.BodyHTML)
	article.Sources = []string{article.URL}
	for _, rel := range related {
		article.Related = append(article.Related, domain.RelatedArticle{
			Title:   rel.Title,
			URL:     rel.URL,
			Summary: rel.Summary,
		})
		article.Sources = append(article.Sources, rel.URL)
	}

	return article, nil
}

// searchTitles runs an open search and returns candidate page titles.
func (c *Client) searchTitles(ctx context.Context, query string) ([]string, error) {
	body, err := c.get(ctx, url.Values{
		"action": {"opensearch"},
		"search": {query},
		"limit":  {"10"},
		"format": {"json"},
	})
	if err != nil {
		return nil, err
	}

	// OpenSearch returns [query, titles, descriptions, urls].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding open search response: %w", domain.ErrParse)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("decoding open search titles: %w", domain.ErrParse)
	}
	return titles, nil
}

type queryPage struct {
	Title     string  `json:"title"`
	Extract   string  `json:"extract"`
	FullURL   string  `json:"fullurl"`
	Missing   *string `json:"missing"`
	Images    []struct {
		Title string `json:"title"`
	} `json:"images"`
	ImageInfo []imageInfo `json:"imageinfo"`
}

type imageInfo struct {
	URL         string `json:"url"`
	ThumbURL    string `json:"thumburl"`
	ExtMetadata map[string]struct {
		Value string `json:"value"`
	} `json:"extmetadata"`
}

type queryResponse struct {
	Query struct {
		Pages map[string]queryPage `json:"pages"`
	} `json:"query"`
}

type parseResponse struct {
	Parse struct {
		Text map[string]string `json:"text"`
	} `json:"parse"`
}

// extractArticle fetches the lead extract and full page HTML for a
// title. Returns domain.ErrNotFound for missing pages.
func (c *Client) extractArticle(ctx context.Context, title string) (*domain.ArticleRecord, error) {
	body, err := c.get(ctx, url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {title},
		"prop":        {"extracts|info"},
		"exintro":     {"true"},
		"explaintext": {"true"},
		"inprop":      {"url"},
	})
	if err != nil {
		return nil, err
	}

	var extract queryResponse
	if err := json.Unmarshal(body, &extract); err != nil {
		return nil, fmt.Errorf("decoding extract for %q: %w", title, domain.ErrParse)
	}

	page, ok := firstPage(extract.Query.Pages)
	if !ok || page.Missing != nil {
		return nil, fmt.Errorf("page %q: %w", title, domain.ErrNotFound)
	}

	body, err = c.get(ctx, url.Values{
		"action": {"parse"},
		"format": {"json"},
		"page":   {title},
		"prop":   {"text"},
	})
	if err != nil {
		return nil, err
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding page text for %q: %w", title, domain.ErrParse)
	}

	articleURL := page.FullURL
	if articleURL == "" {
		articleURL = domain.WikipediaURL(title)
	}
	resolvedTitle := page.Title
	if resolvedTitle == "" {
		resolvedTitle = title
	}

	return &domain.ArticleRecord{
		Title:    resolvedTitle,
		URL:      articleURL,
		Summary:  page.Extract,
		BodyHTML: parsed.Parse.Text["*"],
	}, nil
}

// isDisambiguation reports whether the article is a disambiguation
// page, judged by its title or lead text.
func isDisambiguation(article *domain.ArticleRecord) bool {
	return strings.Contains(strings.ToLower(article.Title), "disambiguation") ||
		strings.Contains(strings.ToLower(article.Summary), "may refer to")
}

// resolveDisambiguation picks the page link most relevant to the
// original topic and fetches it. Falls back to the disambiguation page
// itself when no link scores above zero.
func (c *Client) resolveDisambiguation(ctx context.Context, article *domain.ArticleRecord, topic string) *domain.ArticleRecord {
	bestMatch := pickDisambiguationTarget(article.BodyHTML, topic)
	if bestMatch == "" {
		return article
	}

	resolved, err := c.extractArticle(ctx, bestMatch)
	if err != nil {
		logger.Warn("resolving disambiguation to %q: %v", bestMatch, err)
		return article
	}
	return resolved
}

// pickDisambiguationTarget scores the first links of a disambiguation
// page against the topic and returns the best title. Only a strictly
// higher score displaces the current best, so ties keep the first link
// seen; "" means nothing scored above zero.
func pickDisambiguationTarget(bodyHTML, topic string) string {
	links := wikiAnchor.FindAllStringSubmatch(bodyHTML, -1)

	var bestMatch string
	var bestScore float64
	limit := len(links)
	if limit > 10 {
		limit = 10
	}
	for _, link := range links[:limit] {
		score := relevanceScore(link[2], topic)
		if score > bestScore {
			bestScore = score
			bestMatch = decodeTitle(link[1])
		}
	}
	return bestMatch
}

// relevanceScore is the fraction of topic words present in text.
func relevanceScore(text, topic string) float64 {
	textLower := strings.ToLower(text)
	words := strings.Fields(strings.ToLower(topic))
	if len(words) == 0 {
		return 0
	}

	var score float64
	for _, word := range words {
		if strings.Contains(textLower, word) {
			score++
		}
	}
	return score / float64(len(words))
}

// relatedArticles harvests up to max adjacent articles, preferring
// "See also" links and falling back to the first body links outside
// maintenance namespaces.
func (c *Client) relatedArticles(ctx context.Context, article *domain.ArticleRecord, max int) []*domain.ArticleRecord {
	var related []*domain.ArticleRecord

	seeAlso := seeAlsoSection(article.BodyHTML)
	if seeAlso != "" {
		links := wikiAnchor.FindAllStringSubmatch(seeAlso, -1)
		limit := len(links)
		if limit > max {
			limit = max
		}
		for _, link := range links[:limit] {
			title := decodeTitle(link[1])
			rel, err := c.extractArticle(ctx, title)
			if err != nil {
				logger.Debug("related article %q: %v", title, err)
				continue
			}
			related = append(related, rel)
		}
	}

	if len(related) < max {
		links := wikiAnchor.FindAllStringSubmatch(article.BodyHTML, -1)
		limit := len(links)
		if limit > 20 {
			limit = 20
		}
		for _, link := range links[:limit] {
			if len(related) >= max {
				break
			}
			decoded := decodeTitle(link[1])
			if skipLink(decoded) || containsTitle(related, decoded) {
				continue
			}
			rel, err := c.extractArticle(ctx, decoded)
			if err != nil {
				logger.Debug("related article %q: %v", decoded, err)
				continue
			}
			related = append(related, rel)
		}
	}

	if len(related) > max {
		related = related[:max]
	}
	return related
}

// seeAlsoSection returns the markup between the "See also" heading and
// the next h2, or empty when the page has no such section.
func seeAlsoSection(html string) string {
	lower := strings.ToLower(html)
	idx := strings.Index(lower, ">see also</h2>")
	if idx < 0 {
		return ""
	}
	start := idx + len(">see also</h2>")
	rest := html[start:]
	if next := strings.Index(strings.ToLower(rest), "<h2"); next >= 0 {
		rest = rest[:next]
	}
	return rest
}

func skipLink(decoded string) bool {
	lower := strings.ToLower(decoded)
	for _, ns := range skipNamespaces {
		if strings.Contains(lower, ns) {
			return true
		}
	}
	return false
}

func containsTitle(articles []*domain.ArticleRecord, title string) bool {
	for _, a := range articles {
		if strings.EqualFold(a.Title, title) {
			return true
		}
	}
	return false
}

// decodeTitle turns a /wiki/ link target into a page title.
func decodeTitle(link string) string {
	decoded, err := url.PathUnescape(link)
	if err != nil {
		decoded = link
	}
	return strings.ReplaceAll(decoded, "_", " ")
}

// saveArticles writes the main and related articles to the cache as
// markdown. Existing files are left alone unless force is set.
func (c *Client) saveArticles(main *domain.ArticleRecord, related []*domain.ArticleRecord, force bool) {
	c.saveArticle(main, "", force)
	for i, rel := range related {
		c.saveArticle(rel, fmt.Sprintf("_related_%d", i+1), force)
	}
}

func (c *Client) saveArticle(article *domain.ArticleRecord, suffix string, force bool) {
	if article == nil {
		return
	}

	slug := domain.Slugify(article.Title) + suffix
	if !force && c.cache.Has(slug) {
		logger.Info("article already cached, skipping: %s", slug)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", article.Title)
	fmt.Fprintf(&sb, "**URL:** %s\n\n", article.URL)
	fmt.Fprintf(&sb, "## Summary\n\n%s\n\n", article.Summary)
	sb.WriteString(wikitext.HTMLToMarkdown(article.BodyHTML))

	if err := c.cache.Save(slug, sb.String(), force); err != nil {
		logger.Error("saving article %s: %v", slug, err)
	}
}

// firstPage returns an arbitrary page from the API's pages map, which
// for single-title queries holds exactly one entry.
func firstPage(pages map[string]queryPage) (queryPage, bool) {
	for _, page := range pages {
		return page, true
	}
	return queryPage{}, false
}

// get performs one rate-limited API request and returns the body.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %v: %w", params.Get("action"), err, domain.ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s request returned status %d: %w", params.Get("action"), resp.StatusCode, domain.ErrTransport)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %v: %w", params.Get("action"), err, domain.ErrTransport)
	}
	return body, nil
}
