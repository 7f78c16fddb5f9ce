package driven

import "context"

// ArtifactFetcher downloads corpus artifacts from their remote origins.
// Used at most once per artifact per process lifetime, when a cache file
// is locally absent.
type ArtifactFetcher interface {
	// Fetch downloads url to destPath atomically (no partial file is
	// left behind on failure). A plain unauthenticated GET.
	Fetch(ctx context.Context, url, destPath string) error
}
