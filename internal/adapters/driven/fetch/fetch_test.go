package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"question":"q"}]`))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "qa_embeddings.json")
	c := New(0)
	require.NoError(t, c.Fetch(context.Background(), srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q"}]`, string(data))
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.json")
	err := New(0).Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no partial file on failure")
}

func TestFetchUnreachable(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "artifact.json")
	err := New(0).Fetch(context.Background(), "http://127.0.0.1:1/corpus", dest)
	assert.Error(t, err)
}
