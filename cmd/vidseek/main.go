// Package main provides the vidseek CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/vidseek/vidseek/internal/adapters/driven/activity"
	"github.com/vidseek/vidseek/internal/adapters/driven/classify"
	"github.com/vidseek/vidseek/internal/adapters/driven/config/file"
	"github.com/vidseek/vidseek/internal/adapters/driven/corpus/flatindex"
	"github.com/vidseek/vidseek/internal/adapters/driven/corpus/jsonfile"
	"github.com/vidseek/vidseek/internal/adapters/driven/embedding/ollama"
	"github.com/vidseek/vidseek/internal/adapters/driven/embedding/openai"
	"github.com/vidseek/vidseek/internal/adapters/driven/fetch"
	"github.com/vidseek/vidseek/internal/adapters/driven/storage/sqlite"
	"github.com/vidseek/vidseek/internal/adapters/driving/cli"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/core/services"
	"github.com/vidseek/vidseek/internal/corpuswatch"
	"github.com/vidseek/vidseek/internal/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := file.NewConfigStore(os.Getenv("VIDSEEK_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	dataDir := filepath.Dir(cfg.Path())

	store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	defer store.Close()

	activityLog, err := activity.New(filepath.Join(dataDir, "data"))
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}

	embedder := buildEmbedder(cfg)
	if embedder != nil {
		defer embedder.Close()
	}

	corpusStore, watchPaths, err := buildCorpusStore(cfg, dataDir)
	if err != nil {
		return fmt.Errorf("configuring corpus store: %w", err)
	}
	defer corpusStore.Close()

	watcher, err := corpuswatch.New(corpusStore, watchPaths...)
	if err != nil {
		logger.Warn("corpus watcher unavailable: %v", err)
	} else {
		watcher.Start()
		defer watcher.Close()
	}

	cli.SetVersion(Version)
	cli.SetServices(cli.Services{
		Search:    services.NewSearchService(corpusStore, embedder, activityLog),
		Accounts:  services.NewAccountService(store.UserStore(), activityLog),
		Bookmarks: services.NewBookmarkService(store.BookmarkStore()),
		Corpus:    corpusStore,
		Activity:  activityLog,
	})

	return cli.Execute()
}

// buildEmbedder selects the embedding provider: OpenAI when an API key
// is present, Ollama otherwise. Returns nil when neither is configured;
// the search service reports the condition per query.
func buildEmbedder(cfg driven.ConfigStore) driven.Embedder {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		embedder, err := openai.New(openai.Config{
			APIKey:  key,
			BaseURL: cfg.GetString("embedding.base_url"),
			Model:   cfg.GetString("embedding.model"),
		})
		if err != nil {
			logger.Warn("openai embedder unavailable: %v", err)
			return nil
		}
		return embedder
	}

	if cfg.GetString("embedding.provider") == "ollama" {
		return ollama.New(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	}

	return nil
}

// buildCorpusStore assembles the configured corpus backend and returns
// the local artifact paths the file watcher should observe.
func buildCorpusStore(cfg driven.ConfigStore, dataDir string) (driven.CorpusStore, []string, error) {
	fetcher := fetch.New(0)

	var classifier driven.ContentClassifier
	if cfg.GetBool("classifier.enabled") {
		classifier = classify.New(classify.Config{})
	}

	cacheDir := filepath.Join(dataDir, "cache")

	if cfg.GetString("corpus.backend") == "index" {
		indexPath := cfg.GetString("corpus.index_path")
		if indexPath == "" {
			indexPath = filepath.Join(cacheDir, "corpus.idx")
		}
		metaPath := cfg.GetString("corpus.meta_path")
		if metaPath == "" {
			metaPath = filepath.Join(cacheDir, "corpus_meta.json")
		}

		store, err := flatindex.New(flatindex.Config{
			IndexPath:  indexPath,
			MetaPath:   metaPath,
			IndexURL:   cfg.GetString("corpus.index_url"),
			MetaURL:    cfg.GetString("corpus.meta_url"),
			Fetcher:    fetcher,
			Classifier: classifier,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, []string{indexPath, metaPath}, nil
	}

	path := cfg.GetString("corpus.path")
	if path == "" {
		path = filepath.Join(cacheDir, "corpus.json")
	}

	store, err := jsonfile.New(jsonfile.Config{
		Path:       path,
		RemoteURL:  cfg.GetString("corpus.url"),
		Fetcher:    fetcher,
		Classifier: classifier,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, []string{path}, nil
}
