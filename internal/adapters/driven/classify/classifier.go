// Package classify implements heuristic short-form detection for videos
// whose corpus metadata carries no explicit flag.
//
// The heuristic combines two signals fetched over the network: the
// oEmbed thumbnail geometry (shorts use portrait thumbnails) and the
// watch page's declared duration (shorts run at most three minutes).
// Verdicts are cached with a bounded TTL and outbound requests are
// rate-limited, since classification runs once per unknown video at
// corpus load.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/logger"
)

// Ensure Classifier implements the interface.
var _ driven.ContentClassifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "https://www.youtube.com"
	DefaultTimeout  = 15 * time.Second
	DefaultCacheTTL = 24 * time.Hour

	// DefaultRequestsPerSecond bounds outbound page fetches.
	DefaultRequestsPerSecond = 2

	// shortFormMaxSeconds is the duration ceiling for a short clip.
	shortFormMaxSeconds = 180
)

// iso8601Duration matches the PT#H#M#S duration form used by watch
// pages, e.g. "PT2M35S".
var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Config holds configuration for the classifier.
type Config struct {
	// BaseURL is the video site base URL. Overridable for tests.
	BaseURL string

	// Timeout bounds each page fetch (default: 15s).
	Timeout time.Duration

	// CacheTTL bounds how long a verdict is reused (default: 24h).
	CacheTTL time.Duration

	// RequestsPerSecond limits outbound fetches (default: 2).
	RequestsPerSecond float64
}

// Classifier decides short-form status by scraping public video pages.
type Classifier struct {
	client   *http.Client
	baseURL  string
	cacheTTL time.Duration
	limiter  *rate.Limiter

	mu    sync.Mutex
	cache map[string]verdict
}

type verdict struct {
	short   bool
	expires time.Time
}

// oembedResponse is the subset of the oEmbed payload the heuristic needs.
type oembedResponse struct {
	ThumbnailWidth  int `json:"thumbnail_width"`
	ThumbnailHeight int `json:"thumbnail_height"`
}

// New creates a new classifier.
func New(cfg Config) *Classifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Classifier{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  cfg.BaseURL,
		cacheTTL: cfg.CacheTTL,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:    make(map[string]verdict),
	}
}

// IsShortForm reports whether the video is a short clip: portrait
// thumbnail and duration at most three minutes. Cached verdicts are
// served without network traffic until their TTL lapses.
func (c *Classifier) IsShortForm(ctx context.Context, videoID string) (bool, error) {
	c.mu.Lock()
	if v, ok := c.cache[videoID]; ok && time.Now().Before(v.expires) {
		c.mu.Unlock()
		return v.short, nil
	}
	c.mu.Unlock()

	portrait, err := c.hasPortraitThumbnail(ctx, videoID)
	if err != nil {
		return false, err
	}

	short := false
	if portrait {
		// Only portrait candidates are worth the second fetch.
		duration, err := c.pageDuration(ctx, videoID)
		if err != nil {
			return false, err
		}
		short = duration > 0 && duration <= shortFormMaxSeconds
	}

	c.mu.Lock()
	c.cache[videoID] = verdict{short: short, expires: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	logger.Debug("Classified %s: short=%t", videoID, short)
	return short, nil
}

// Close releases resources.
func (c *Classifier) Close() error {
	return nil
}

// hasPortraitThumbnail checks the oEmbed thumbnail geometry.
func (c *Classifier) hasPortraitThumbnail(ctx context.Context, videoID string) (bool, error) {
	watchURL := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	oembedURL := c.baseURL + "/oembed?url=" + url.QueryEscape(watchURL) + "&format=json"

	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("create oembed request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetch oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("oembed status %d for %s", resp.StatusCode, videoID)
	}

	var payload oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode oembed: %w", err)
	}

	return payload.ThumbnailHeight > payload.ThumbnailWidth, nil
}

// pageDuration scrapes the watch page's itemprop duration meta tag.
// A page without the tag yields 0 (unknown).
func (c *Classifier) pageDuration(ctx context.Context, videoID string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	watchURL := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create watch request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("watch page status %d for %s", resp.StatusCode, videoID)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parse watch page: %w", err)
	}

	content, ok := doc.Find(`meta[itemprop="duration"]`).Attr("content")
	if !ok {
		return 0, nil
	}
	return parseISO8601Duration(content), nil
}

// parseISO8601Duration converts a PT#H#M#S duration to seconds.
// Unparseable input yields 0.
func parseISO8601Duration(s string) int {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	total := 0
	for i, factor := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * factor
	}
	return total
}
