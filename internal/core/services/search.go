// Package services implements the core application services behind the
// driving ports.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/core/ports/driving"
	"github.com/vidseek/vidseek/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// candidateFactor is how many raw candidates are requested per final
// result slot. Downstream deduplication discards many raw hits, so the
// ranker is asked for more than the caller wants; stores cap this at
// the corpus size.
const candidateFactor = 4

// SearchService orchestrates one query through the pipeline:
// embed, rank against the corpus, deduplicate, truncate.
type SearchService struct {
	corpus   driven.CorpusStore
	embedder driven.Embedder
	activity driven.ActivityLog
}

// NewSearchService creates a new search service.
// The activity log is optional (can be nil).
func NewSearchService(
	corpus driven.CorpusStore,
	embedder driven.Embedder,
	activity driven.ActivityLog,
) *SearchService {
	return &SearchService{
		corpus:   corpus,
		embedder: embedder,
		activity: activity,
	}
}

// Search embeds the query, ranks it against the corpus and returns the
// deduplicated top results in non-increasing score order.
//
// Load-time failures surface as domain.ErrCorpusUnavailable before any
// embedding or ranking work is done. A failed embedding call is fatal
// for this query only; the corpus stays resident and the next query may
// retry independently.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.ScoredResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.ScoredResult{}, nil
	}

	if s.corpus == nil {
		return nil, domain.ErrCorpusUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// Make the corpus resident before spending an embedding call on a
	// query that could never be ranked.
	if _, err := s.corpus.Load(ctx); err != nil {
		logger.Warn("Corpus load failed: %v", err)
		return nil, err
	}

	limit := opts.Limit()
	internalLimit := limit * candidateFactor
	logger.Debug("Limit: %d, internal limit: %d, corpus size: %d",
		limit, internalLimit, s.corpus.Len())

	logger.Debug("Generating query embedding with %s...", s.embedder.ModelName())
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingService, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	candidates, err := s.corpus.Rank(ctx, vector, internalLimit)
	if err != nil {
		logger.Warn("Ranking failed: %v", err)
		return nil, fmt.Errorf("rank corpus: %w", err)
	}
	logger.Debug("Raw candidates: %d", len(candidates))

	results := SelectTopK(candidates, limit)
	logger.Info("Final results: %d", len(results))

	if s.activity != nil {
		if err := s.activity.Record(domain.EventSearch, map[string]string{"query": query}); err != nil {
			logger.Warn("Activity record failed: %v", err)
		}
	}

	return results, nil
}
