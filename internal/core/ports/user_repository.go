package ports

import (
	"context"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create persists a new user and returns it with its assigned ID.
	// A uniqueness violation on username must surface as
	// domain.ErrUsernameTaken: duplicate-check-then-insert is not atomic in
	// the service layer, so the store's unique index is the arbiter.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
