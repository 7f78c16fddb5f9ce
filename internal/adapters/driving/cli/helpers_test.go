package cli

import (
	"context"

	"github.com/vidseek/vidseek/internal/core/domain"
)

// stubSearchService returns canned results.
type stubSearchService struct {
	results []domain.ScoredResult
	err     error
}

func (s *stubSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.ScoredResult, error) {
	return s.results, s.err
}

// stubAccountService accepts any credentials.
type stubAccountService struct{}

func (s *stubAccountService) Register(_ context.Context, username, _ string) (*domain.User, error) {
	return &domain.User{ID: "user-1", Username: username}, nil
}

func (s *stubAccountService) Login(_ context.Context, username, _ string) (*domain.User, error) {
	return &domain.User{ID: "user-1", Username: username}, nil
}

// stubBookmarkService records calls.
type stubBookmarkService struct {
	bookmarks []domain.Bookmark
}

func (s *stubBookmarkService) Add(_ context.Context, userID string, result domain.ScoredResult) (*domain.Bookmark, error) {
	b := domain.Bookmark{
		ID:       "bm-1",
		UserID:   userID,
		Question: result.Item.Question,
		Answer:   result.Item.Answer,
		URL:      result.Item.SourceURL,
	}
	s.bookmarks = append(s.bookmarks, b)
	return &b, nil
}

func (s *stubBookmarkService) List(_ context.Context, _ string) ([]domain.Bookmark, error) {
	return s.bookmarks, nil
}

func (s *stubBookmarkService) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *stubBookmarkService) ExportCSV(_ context.Context, _ string) ([]byte, error) {
	return []byte("ID,Question,Answer,URL,Timestamp\n"), nil
}

// stubCorpusStore serves a fixed item count.
type stubCorpusStore struct {
	count int
}

func (s *stubCorpusStore) Load(_ context.Context) ([]domain.CorpusItem, error) {
	return make([]domain.CorpusItem, s.count), nil
}

func (s *stubCorpusStore) Rank(_ context.Context, _ []float32, _ int) ([]domain.ScoredResult, error) {
	return nil, nil
}

func (s *stubCorpusStore) Len() int     { return s.count }
func (s *stubCorpusStore) Invalidate()  {}
func (s *stubCorpusStore) Close() error { return nil }

// stubActivityLog serves fixed usage data.
type stubActivityLog struct {
	events []domain.ActivityEvent
	usage  map[string]int
}

func (s *stubActivityLog) Record(event string, fields map[string]string) error {
	s.events = append(s.events, domain.ActivityEvent{Event: event, Fields: fields})
	return nil
}

func (s *stubActivityLog) RecordAccess() error { return nil }

func (s *stubActivityLog) Events() ([]domain.ActivityEvent, error) { return s.events, nil }

func (s *stubActivityLog) MonthlyUsage() (map[string]int, error) { return s.usage, nil }

// setupTestServices wires stub services and returns a cleanup func.
func setupTestServices() func() {
	SetServices(Services{
		Search: &stubSearchService{
			results: []domain.ScoredResult{
				{
					Item: domain.CorpusItem{
						Question:       "How wide should my grip be?",
						Answer:         "Slightly outside shoulder width.",
						SourceURL:      "https://youtu.be/aaaaaaaaaa1?t=75",
						TimestampLabel: "1:15",
						Title:          "Bench Press Basics",
					},
					Score: 0.93,
				},
			},
		},
		Accounts:  &stubAccountService{},
		Bookmarks: &stubBookmarkService{},
		Corpus:    &stubCorpusStore{count: 42},
		Activity:  &stubActivityLog{usage: map[string]int{"2025-03": 2}},
	})

	return func() {
		SetServices(Services{})
	}
}
