// Package driving provides interfaces through which external actors
// (CLI, presentation layer) drive the core (primary/inbound ports).
package driving

import (
	"context"

	"github.com/vidseek/vidseek/internal/core/domain"
)

// SearchService provides semantic search over the loaded corpus.
type SearchService interface {
	// Search embeds the query, ranks it against the corpus and returns
	// the deduplicated top results in non-increasing score order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.ScoredResult, error)
}
