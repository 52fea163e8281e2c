// Package store defines the data access interfaces implemented by the
// concrete drivers.
package store

import (
	"context"
	"errors"

	"github.com/kamelin22/user-api/internal/userapi/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// HistoryLimit caps how many history entries are retained per user; adding
// beyond the cap evicts the oldest entries.
const HistoryLimit = 50

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Users() Users
	Favourites() Favourites
	History() History

	// ApplyMigrations brings the schema up to date.
	ApplyMigrations() error

	// Ping verifies the database connection is alive. Used by the retried
	// startup bootstrap and the readiness probe.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username is taken; the unique index
	// guarantees at most one of two concurrent creates wins.
	CreateUser(ctx context.Context, u domain.User) error
}

type Favourites interface {
	// ListFavourites returns the favourite item ids for a user, oldest first.
	ListFavourites(ctx context.Context, userID string) ([]string, error)

	// AddFavourite records an item; adding an existing favourite is a no-op.
	AddFavourite(ctx context.Context, userID, itemID string) error

	// RemoveFavourite deletes an item; removing an absent one is a no-op.
	RemoveFavourite(ctx context.Context, userID, itemID string) error
}

type History interface {
	// ListHistory returns a user's entries, newest first.
	ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error)

	// AddHistory appends an entry and evicts the oldest beyond HistoryLimit.
	AddHistory(ctx context.Context, entry domain.HistoryEntry) error

	// RemoveHistory deletes one entry owned by the user. Returns ErrNotFound
	// when the entry does not exist or belongs to someone else.
	RemoveHistory(ctx context.Context, userID, entryID string) error
}
