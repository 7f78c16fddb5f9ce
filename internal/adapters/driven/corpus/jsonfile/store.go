// Package jsonfile implements the brute-force corpus backend: a single
// JSON cache file of items with inline embeddings, ranked by a full
// cosine scan per query.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/vidseek/vidseek/internal/adapters/driven/corpus"
	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// Config holds configuration for the JSON corpus store.
type Config struct {
	// Path is the local cache file (required).
	Path string

	// RemoteURL is where the cache is fetched from when locally absent.
	RemoteURL string

	// Fetcher downloads the artifact. Required when RemoteURL is set.
	Fetcher driven.ArtifactFetcher

	// Classifier optionally resolves short-form status at load time.
	Classifier driven.ContentClassifier
}

// Store is the brute-force corpus backend.
type Store struct {
	cfg Config

	mu        sync.RWMutex
	items     []domain.CorpusItem
	dimension int
	loaded    bool
}

// New creates a new JSON corpus store.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("jsonfile: cache path is required")
	}
	return &Store{cfg: cfg}, nil
}

// Load ensures the corpus is resident, fetching the cache file from its
// remote origin first when locally absent. Any failure surfaces as
// domain.ErrCorpusUnavailable; no partial corpus is served.
func (s *Store) Load(ctx context.Context) ([]domain.CorpusItem, error) {
	s.mu.RLock()
	if s.loaded {
		items := s.items
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.items, nil
	}

	if err := s.ensureArtifact(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading cache %s: %v", domain.ErrCorpusUnavailable, s.cfg.Path, err)
	}

	var records []corpus.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed cache %s: %v", domain.ErrCorpusUnavailable, s.cfg.Path, err)
	}

	items := make([]domain.CorpusItem, 0, len(records))
	dimension := 0
	for i, r := range records {
		if len(r.Embedding) == 0 {
			return nil, fmt.Errorf("%w: record %d has no embedding", domain.ErrCorpusUnavailable, i)
		}
		if dimension == 0 {
			dimension = len(r.Embedding)
		} else if len(r.Embedding) != dimension {
			return nil, fmt.Errorf("%w: record %d embedding dimension %d, want %d",
				domain.ErrCorpusUnavailable, i, len(r.Embedding), dimension)
		}
		items = append(items, r.ToItem(ctx, s.cfg.Classifier))
	}

	s.items = items
	s.dimension = dimension
	s.loaded = true
	logger.Info("Corpus loaded: %d items, dimension %d", len(items), dimension)
	return s.items, nil
}

// Rank scores the query against every corpus vector and returns up to k
// candidates in descending score order. Ties keep corpus order (stable
// sort). A k <= 0 requests the full ranking.
func (s *Store) Rank(ctx context.Context, query []float32, k int) ([]domain.ScoredResult, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	dimension := s.dimension
	s.mu.RUnlock()

	if len(query) != dimension {
		return nil, fmt.Errorf("%w: query dimension %d, corpus dimension %d",
			domain.ErrInvalidInput, len(query), dimension)
	}

	results := make([]domain.ScoredResult, len(items))
	for i := range items {
		results[i] = domain.ScoredResult{
			Item:  items[i],
			Score: corpus.Cosine(query, items[i].Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len reports the number of loaded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Invalidate marks the resident corpus stale so the next Load re-reads
// the cache file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.items = nil
	s.dimension = 0
	logger.Info("Corpus cache invalidated")
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// ensureArtifact downloads the cache file when locally absent.
// Caller holds the write lock.
func (s *Store) ensureArtifact(ctx context.Context) error {
	if _, err := os.Stat(s.cfg.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat cache %s: %v", domain.ErrCorpusUnavailable, s.cfg.Path, err)
	}

	if s.cfg.RemoteURL == "" || s.cfg.Fetcher == nil {
		return fmt.Errorf("%w: cache %s missing and no remote origin configured",
			domain.ErrCorpusUnavailable, s.cfg.Path)
	}

	logger.Info("Fetching corpus cache from %s", s.cfg.RemoteURL)
	if err := s.cfg.Fetcher.Fetch(ctx, s.cfg.RemoteURL, s.cfg.Path); err != nil {
		return fmt.Errorf("%w: fetching %s: %v", domain.ErrCorpusUnavailable, s.cfg.RemoteURL, err)
	}
	return nil
}
