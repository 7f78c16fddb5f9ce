package flatindex

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

// Config holds configuration for the indexed corpus store.
type Config struct {
	// IndexPath is the local binary index file (required).
	IndexPath string

	// MetaPath is the local metadata list file (required).
	MetaPath string

	// IndexURL and MetaURL are the remote origins used when the local
	// artifacts are absent.
	IndexURL string
	MetaURL  string

	// Fetcher downloads missing artifacts.
	Fetcher driven.ArtifactFetcher

	// Classifier optionally resolves short-form status at load time.
	Classifier driven.ContentClassifier
}

// Store is the indexed corpus backend. Position i in the metadata list
// corresponds to vector i in the index; this alignment is verified at
// load and a violation fails the whole load.
type Store struct {
	cfg Config

	mu     sync.RWMutex
	index  *Index
	items  []domain.CorpusItem
	loaded bool
}

// New creates a new indexed corpus store.
func New(cfg Config) (*Store, error) {
	if cfg.IndexPath == "" || cfg.MetaPath == "" {
		return nil, fmt.Errorf("flatindex: index and metadata paths are required")
	}
	return &Store{cfg: cfg}, nil
}

// Load ensures both artifacts are resident, fetching missing ones from
// their remote origins first. Cardinality mismatch between index and
// metadata, like every other load failure, surfaces as
// domain.ErrCorpusUnavailable.
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

	if err := s.ensureArtifact(ctx, s.cfg.IndexPath, s.cfg.IndexURL); err != nil {
		return nil, err
	}
	if err := s.ensureArtifact(ctx, s.cfg.MetaPath, s.cfg.MetaURL); err != nil {
		return nil, err
	}

	index, err := OpenIndex(s.cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusUnavailable, err)
	}

	metaData, err := os.ReadFile(s.cfg.MetaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading metadata %s: %v", domain.ErrCorpusUnavailable, s.cfg.MetaPath, err)
	}

	var records []corpus.Record
	if err := json.Unmarshal(metaData, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed metadata %s: %v", domain.ErrCorpusUnavailable, s.cfg.MetaPath, err)
	}

	if len(records) != index.Count() {
		return nil, fmt.Errorf("%w: index holds %d vectors but metadata lists %d items",
			domain.ErrCorpusUnavailable, index.Count(), len(records))
	}

	items := make([]domain.CorpusItem, len(records))
	for i, r := range records {
		items[i] = r.ToItem(ctx, s.cfg.Classifier)
	}

	s.index = index
	s.items = items
	s.loaded = true
	logger.Info("Corpus index loaded: %d vectors, dimension %d", index.Count(), index.Dimension())
	return s.items, nil
}

// Rank delegates to the index's native search, filters no-match and
// out-of-range ordinals, resolves the survivors through the metadata
// list and re-sorts descending. The index's own ordering is not
// trusted to survive the filter step.
func (s *Store) Rank(ctx context.Context, query []float32, k int) ([]domain.ScoredResult, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	index := s.index
	items := s.items
	s.mu.RUnlock()

	if k <= 0 || k > index.Count() {
		k = index.Count()
	}

	hits, err := index.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	results := make([]domain.ScoredResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Ordinal < 0 || hit.Ordinal >= len(items) {
			continue
		}
		results = append(results, domain.ScoredResult{
			Item:  items[hit.Ordinal],
			Score: hit.Score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Len reports the number of loaded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Invalidate marks the resident corpus stale so the next Load re-reads
// both artifacts.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.index = nil
	s.items = nil
	logger.Info("Corpus index invalidated")
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// ensureArtifact downloads an artifact when locally absent.
// Caller holds the write lock.
func (s *Store) ensureArtifact(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrCorpusUnavailable, path, err)
	}

	if url == "" || s.cfg.Fetcher == nil {
		return fmt.Errorf("%w: artifact %s missing and no remote origin configured",
			domain.ErrCorpusUnavailable, path)
	}

	logger.Info("Fetching corpus artifact from %s", url)
	if err := s.cfg.Fetcher.Fetch(ctx, url, path); err != nil {
		return fmt.Errorf("%w: fetching %s: %v", domain.ErrCorpusUnavailable, url, err)
	}
	return nil
}
