package domain

import "time"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never the plaintext password.
	PasswordHash string

	// CreatedAt is when the account was registered.
	CreatedAt time.Time
}

// Bookmark is a search result a user chose to keep.
type Bookmark struct {
	// ID is the unique identifier for the bookmark.
	ID string

	// UserID links to the owning User.
	UserID string

	// Question and Answer are copied from the bookmarked result so the
	// bookmark survives corpus refreshes.
	Question string
	Answer   string

	// URL is the video locator of the bookmarked result.
	URL string

	// CreatedAt is when the bookmark was saved.
	CreatedAt time.Time
}
