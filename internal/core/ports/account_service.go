package ports

import (
	"context"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

// AddUserInput carries the data for an admin-initiated user creation.
type AddUserInput struct {
	Username string
	Password string
	ShopID   string
}

// ChangePasswordInput carries the data for a password change. AsAdmin marks
// the admin entry variant, which is the only one allowed to target another
// (non-admin) user.
type ChangePasswordInput struct {
	TargetID    string
	OldPassword string
	NewPassword string
	AsAdmin     bool
}

// AccountService is the authentication/authorization policy engine. Every
// operation validates its preconditions and the caller's authority before
// delegating mutation to the UserRepository; failures are terminal per call.
type AccountService interface {
	// Register creates a self-registered account and returns it with a fresh
	// bearer token. Self-registered users are bootstrap admins and carry
	// both ROLE_USER and ROLE_ADMIN.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and returns the user with a newly issued
	// token, overwriting any previously active one.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// AddUser creates a tenant-scoped account holding ROLE_USER only. The
	// new user has no token until its first login.
	AddUser(ctx context.Context, caller *domain.User, in AddUserInput) (*domain.User, error)
	// SuspendUser disables the target account.
	SuspendUser(ctx context.Context, caller *domain.User, targetID string) error
	// ChangePassword replaces the target's password hash according to the
	// role/self decision table. The active token is not rotated.
	ChangePassword(ctx context.Context, caller *domain.User, in ChangePasswordInput) error
	// Authenticate resolves a presented bearer token to an enabled user
	// whose stored token matches it.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
