package driven

import (
	"context"

	"github.com/vidseek/vidseek/internal/core/domain"
)

// UserStore persists registered accounts.
type UserStore interface {
	// Create stores a new user. Returns domain.ErrAlreadyExists when the
	// username is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by login name.
	// Returns domain.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BookmarkStore persists per-user bookmarks.
type BookmarkStore interface {
	// Save stores a bookmark.
	Save(ctx context.Context, bookmark *domain.Bookmark) error

	// ListByUser returns a user's bookmarks, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error)

	// Delete removes a bookmark by ID.
	// Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// ActivityLog records user actions and access events for usage reporting.
type ActivityLog interface {
	// Record appends one activity event.
	Record(event string, fields map[string]string) error

	// RecordAccess counts one login against the current month.
	RecordAccess() error

	// Events returns all recorded activity events in append order.
	Events() ([]domain.ActivityEvent, error)

	// MonthlyUsage returns login counts keyed by "YYYY-MM".
	MonthlyUsage() (map[string]int, error)
}

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false when absent or mistyped.
	GetBool(key string) bool

	// Set stores a configuration value and persists it.
	Set(key string, value any) error
}
