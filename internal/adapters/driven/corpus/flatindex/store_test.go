package flatindex

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
	payloads map[string][]byte // url -> content
	err      error
	calls    int
}

func (f *stubFetcher) Fetch(_ context.Context, url, destPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	payload, ok := f.payloads[url]
	if !ok {
		return errors.New("not found")
	}
	return os.WriteFile(destPath, payload, 0600)
}

func testMeta() []corpus.Record {
	return []corpus.Record{
		{Question: "faith", Answer: "a1", VideoURL: "https://www.youtube.com/watch?v=aaaaaaaaaa1", Timestamp: "0:30"},
		{Question: "hope", Answer: "a2", VideoURL: "https://www.youtube.com/watch?v=bbbbbbbbbb1", Timestamp: "2:00"},
		{Question: "charity", Answer: "a3", VideoURL: "https://www.youtube.com/watch?v=cccccccccc1", Timestamp: "4:00"},
	}
}

func testVectors() [][]float32 {
	return [][]float32{
		{1, 0, 0},
		{0.7, 0.7, 0},
		{0, 0, 1},
	}
}

func writeArtifacts(t *testing.T, vectors [][]float32, meta []corpus.Record) (indexPath, metaPath string) {
	t.Helper()
	dir := t.TempDir()
	indexPath = filepath.Join(dir, "corpus.vsix")
	metaPath = filepath.Join(dir, "corpus_meta.json")

	require.NoError(t, WriteIndex(indexPath, len(vectors[0]), vectors))
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metaPath, data, 0600))
	return indexPath, metaPath
}

func TestStoreLoadAlignment(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "faith", items[0].Question)
	assert.Equal(t, 3, store.Len())
}

func TestStoreLoadCardinalityMismatch(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta()[:2])

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestStoreLoadMalformedMetadata(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())
	require.NoError(t, os.WriteFile(metaPath, []byte("[{"), 0600))

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestStoreFetchesMissingArtifacts(t *testing.T) {
	srcIndex, srcMeta := writeArtifacts(t, testVectors(), testMeta())
	indexPayload, err := os.ReadFile(srcIndex)
	require.NoError(t, err)
	metaPayload, err := os.ReadFile(srcMeta)
	require.NoError(t, err)

	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://example.com/corpus.vsix":      indexPayload,
		"https://example.com/corpus_meta.json": metaPayload,
	}}

	dir := t.TempDir()
	store, err := New(Config{
		IndexPath: filepath.Join(dir, "corpus.vsix"),
		MetaPath:  filepath.Join(dir, "corpus_meta.json"),
		IndexURL:  "https://example.com/corpus.vsix",
		MetaURL:   "https://example.com/corpus_meta.json",
		Fetcher:   fetcher,
	})
	require.NoError(t, err)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 2, fetcher.calls)
}

func TestStoreFetchFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := New(Config{
		IndexPath: filepath.Join(dir, "corpus.vsix"),
		MetaPath:  filepath.Join(dir, "corpus_meta.json"),
		IndexURL:  "https://example.com/corpus.vsix",
		MetaURL:   "https://example.com/corpus_meta.json",
		Fetcher:   &stubFetcher{err: errors.New("connection refused")},
	})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestStoreRank(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	results, err := store.Rank(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "faith", results[0].Item.Question)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, "hope", results[1].Item.Question)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestStoreRankFullWhenKTooLarge(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	results, err := store.Rank(context.Background(), []float32{1, 0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestStoreRankDimensionMismatch(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	_, err = store.Rank(context.Background(), []float32{1, 0}, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStoreInvalidate(t *testing.T) {
	indexPath, metaPath := writeArtifacts(t, testVectors(), testMeta())

	store, err := New(Config{IndexPath: indexPath, MetaPath: metaPath})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.NoError(t, err)

	store.Invalidate()
	assert.Zero(t, store.Len())

	_, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
}
