package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/core/ports/driving"
)

// Ensure BookmarkService implements the interface.
var _ driving.BookmarkService = (*BookmarkService)(nil)

// BookmarkService manages a user's saved results.
type BookmarkService struct {
	bookmarks driven.BookmarkStore
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(bookmarks driven.BookmarkStore) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

// Add saves a search result as a bookmark for the user.
// The question/answer text is copied so bookmarks survive corpus refreshes.
func (s *BookmarkService) Add(
	ctx context.Context, userID string, result domain.ScoredResult,
) (*domain.Bookmark, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrInvalidInput)
	}

	b := &domain.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		Question:  result.Item.Question,
		Answer:    result.Item.Answer,
		URL:       result.Item.SourceURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bookmarks.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("save bookmark: %w", err)
	}
	return b, nil
}

// List returns the user's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}

// Delete removes a bookmark.
func (s *BookmarkService) Delete(ctx context.Context, id string) error {
	return s.bookmarks.Delete(ctx, id)
}

// ExportCSV renders the user's bookmarks as CSV, newest first.
func (s *BookmarkService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	bookmarks, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Question", "Answer", "URL", "Timestamp"}); err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		record := []string{b.ID, b.Question, b.Answer, b.URL, b.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
