package driven

import (
	"context"

	"github.com/vidseek/vidseek/internal/core/domain"
)

// CorpusStore loads and ranks the static searchable corpus.
//
// The corpus is loaded once and held as read-only shared state for the
// process lifetime; concurrent readers need no locking because no query
// path mutates it. Implementations back this with either a flat JSON
// cache of items-with-embeddings or a binary vector index plus an
// ordinal-aligned metadata list.
type CorpusStore interface {
	// Load ensures the corpus is resident, fetching missing artifacts
	// from their remote origins first. Returns domain.ErrCorpusUnavailable
	// (wrapped) when an artifact cannot be fetched or parsed; no partial
	// corpus is ever served.
	Load(ctx context.Context) ([]domain.CorpusItem, error)

	// Rank scores the query vector against every corpus vector and
	// returns up to k candidates in descending score order. A k <= 0
	// requests the full ranking. Loads the corpus first if needed.
	Rank(ctx context.Context, query []float32, k int) ([]domain.ScoredResult, error)

	// Len reports the number of loaded items; 0 before the first Load.
	Len() int

	// Invalidate marks the resident corpus stale so the next Load
	// re-reads (and if necessary re-fetches) the artifacts.
	Invalidate()

	// Close releases resources.
	Close() error
}
