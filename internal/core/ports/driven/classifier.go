package driven

import "context"

// ContentClassifier decides whether a video is short-form content.
//
// Classification may require network lookups (thumbnail geometry, page
// scraping), so implementations are expected to cache verdicts with a
// bounded TTL and rate-limit their outbound requests.
type ContentClassifier interface {
	// IsShortForm reports whether the video identified by videoID is a
	// short clip. An error means the verdict could not be determined;
	// callers should fall back to URL-pattern detection.
	IsShortForm(ctx context.Context, videoID string) (bool, error)

	// Close releases resources.
	Close() error
}
