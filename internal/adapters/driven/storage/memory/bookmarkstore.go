package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
)

// Ensure BookmarkStore implements the interface.
var _ driven.BookmarkStore = (*BookmarkStore)(nil)

// BookmarkStore is an in-memory implementation of driven.BookmarkStore.
type BookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[string]domain.Bookmark
}

// NewBookmarkStore creates a new in-memory bookmark store.
func NewBookmarkStore() *BookmarkStore {
	return &BookmarkStore{bookmarks: make(map[string]domain.Bookmark)}
}

// Save stores a bookmark.
func (s *BookmarkStore) Save(_ context.Context, bookmark *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks[bookmark.ID] = *bookmark
	return nil
}

// ListByUser returns a user's bookmarks, newest first.
func (s *BookmarkStore) ListByUser(_ context.Context, userID string) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a bookmark by ID.
func (s *BookmarkStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookmarks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}
