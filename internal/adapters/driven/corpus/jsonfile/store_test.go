package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidseek/vidseek/internal/adapters/driven/corpus"
	"github.com/vidseek/vidseek/internal/core/domain"
)

// stubFetcher implements driven.ArtifactFetcher for testing.
type stubFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(_ context.Context, _ string, destPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, f.payload, 0600)
}

func writeCache(t *testing.T, records []corpus.Record) string {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "qa_embeddings.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func testRecords() []corpus.Record {
	return []corpus.Record{
		{
			Question:  "What is faith?",
			Answer:    "Trust in things unseen.",
			VideoURL:  "https://www.youtube.com/watch?v=aaaaaaaaaa1",
			Timestamp: "0:30",
			Embedding: []float64{1, 0, 0},
		},
		{
			Question:  "What is hope?",
			Answer:    "Confident expectation.",
			VideoURL:  "https://www.youtube.com/watch?v=bbbbbbbbbb1",
			Timestamp: "2:00",
			Embedding: []float64{0.7, 0.7, 0},
		},
		{
			Question:  "What is charity?",
			Answer:    "The pure love.",
			VideoURL:  "https://www.youtube.com/watch?v=cccccccccc1",
			Timestamp: "4:00",
			Embedding: []float64{0, 0, 1},
		},
	}
}

func TestLoadFromLocalCache(t *testing.T) {
	store, err := New(Config{Path: writeCache(t, testRecords())})
	require.NoError(t, err)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "aaaaaaaaaa1", items[0].VideoID)
	assert.Equal(t, 3, store.Len())
}

func TestLoadIsCachedPerProcess(t *testing.T) {
	path := writeCache(t, testRecords())
	store, err := New(Config{Path: path})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.NoError(t, err)

	// Removing the file does not affect the resident corpus.
	require.NoError(t, os.Remove(path))
	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestInvalidateForcesReload(t *testing.T) {
	path := writeCache(t, testRecords())
	store, err := New(Config{Path: path})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.NoError(t, err)

	store.Invalidate()
	assert.Zero(t, store.Len())

	require.NoError(t, os.Remove(path))
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoadFetchesWhenMissing(t *testing.T) {
	payload, err := json.Marshal(testRecords())
	require.NoError(t, err)
	fetcher := &stubFetcher{payload: payload}

	store, err := New(Config{
		Path:      filepath.Join(t.TempDir(), "qa_embeddings.json"),
		RemoteURL: "https://example.com/qa_embeddings.json",
		Fetcher:   fetcher,
	})
	require.NoError(t, err)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 1, fetcher.calls)

	// Second load stays in memory.
	_, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoadFetchFailure(t *testing.T) {
	store, err := New(Config{
		Path:      filepath.Join(t.TempDir(), "qa_embeddings.json"),
		RemoteURL: "https://example.com/qa_embeddings.json",
		Fetcher:   &stubFetcher{err: errors.New("connection refused")},
	})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoadMissingNoRemote(t *testing.T) {
	store, err := New(Config{Path: filepath.Join(t.TempDir(), "absent.json")})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoadMalformedCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa_embeddings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, err := New(Config{Path: path})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoadRejectsMissingEmbedding(t *testing.T) {
	records := testRecords()
	records[1].Embedding = nil

	store, err := New(Config{Path: writeCache(t, records)})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	records := testRecords()
	records[2].Embedding = []float64{1, 0}

	store, err := New(Config{Path: writeCache(t, records)})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestRankDescendingOrder(t *testing.T) {
	store, err := New(Config{Path: writeCache(t, testRecords())})
	require.NoError(t, err)

	results, err := store.Rank(context.Background(), []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "What is faith?", results[0].Item.Question)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankTruncatesToK(t *testing.T) {
	store, err := New(Config{Path: writeCache(t, testRecords())})
	require.NoError(t, err)

	results, err := store.Rank(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRankDimensionMismatch(t *testing.T) {
	store, err := New(Config{Path: writeCache(t, testRecords())})
	require.NoError(t, err)

	_, err = store.Rank(context.Background(), []float32{1, 0}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRankReproducibleOrdering(t *testing.T) {
	store, err := New(Config{Path: writeCache(t, testRecords())})
	require.NoError(t, err)

	query := []float32{0.5, 0.5, 0.1}
	first, err := store.Rank(context.Background(), query, 0)
	require.NoError(t, err)
	second, err := store.Rank(context.Background(), query, 0)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Item.Question, second[i].Item.Question)
	}
}
