package driving

import (
	"context"

	"github.com/vidseek/vidseek/internal/core/domain"
)

// AccountService manages user registration and login.
type AccountService interface {
	// Register creates a new account with a hashed password.
	// Returns domain.ErrAlreadyExists when the username is taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials and returns the matching user.
	// Returns domain.ErrAuthInvalid on a bad username or password.
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

// BookmarkService manages a user's saved results.
type BookmarkService interface {
	// Add saves a search result as a bookmark for the user.
	Add(ctx context.Context, userID string, result domain.ScoredResult) (*domain.Bookmark, error)

	// List returns the user's bookmarks, newest first.
	List(ctx context.Context, userID string) ([]domain.Bookmark, error)

	// Delete removes a bookmark.
	Delete(ctx context.Context, id string) error

	// ExportCSV renders the user's bookmarks as CSV.
	ExportCSV(ctx context.Context, userID string) ([]byte, error)
}
