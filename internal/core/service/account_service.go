package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

// UserCache abstracts the read-through user cache consulted on every
// authenticated request (Redis). Cache failures are never fatal: lookups fall
// through to the repository and writes are best-effort.
type UserCache interface {
	// Get returns the cached user, or nil when the id is not cached.
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

type accountService struct {
	users  ports.UserRepository
	shops  ports.ShopRepository
	issuer ports.TokenIssuer
	cache  UserCache
	log    zerolog.Logger
}

// NewAccountService returns the AccountService implementation backed by the
// given repositories, token issuer, and user cache.
func NewAccountService(
	users ports.UserRepository,
	shops ports.ShopRepository,
	issuer ports.TokenIssuer,
	cache UserCache,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		users:  users,
		shops:  shops,
		issuer: issuer,
		cache:  cache,
		log:    log,
	}
}

func (s *accountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Enabled:      true,
		// Self-registered users are bootstrap admins: they own the platform
		// account that later provisions shops and tenant users.
		Roles:     []domain.Role{domain.RoleUser, domain.RoleAdmin},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique index on username is the arbiter for concurrent
	// registrations; Create reports a losing race as ErrUsernameTaken.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.issueToken(ctx, created); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// The enabled check runs before the credential compare: a suspended
	// account is reported as disabled even when the password is wrong.
	if !user.Enabled {
		return nil, domain.ErrUserDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.issueToken(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return user, nil
}

func (s *accountService) AddUser(ctx context.Context, caller *domain.User, in ports.AddUserInput) (*domain.User, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.ShopID == "" {
		return nil, fmt.Errorf("%w: shop id is required", domain.ErrValidation)
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	ok, err := s.shops.Exists(ctx, in.ShopID)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	if !ok {
		return nil, domain.ErrShopNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("add user: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Enabled:      true,
		ShopID:       in.ShopID,
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", created.ID).
		Str("username", created.Username).
		Str("shop_id", in.ShopID).
		Str("created_by", caller.ID).
		Msg("tenant user created")
	return created, nil
}

func (s *accountService) SuspendUser(ctx context.Context, caller *domain.User, targetID string) error {
	if caller == nil || !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	target.Enabled = false
	target.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, target); err != nil {
		return fmt.Errorf("suspend user: %w", err)
	}
	s.invalidate(ctx, target.ID)

	s.log.Info().Str("user_id", target.ID).Str("suspended_by", caller.ID).Msg("user suspended")
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, caller *domain.User, in ports.ChangePasswordInput) error {
	if caller == nil {
		return domain.ErrForbidden
	}
	if err := validatePassword(in.NewPassword); err != nil {
		return err
	}

	target, err := s.users.FindByID(ctx, in.TargetID)
	if err != nil {
		return err
	}

	if target.ID != caller.ID {
		// Only the admin entry variant may target another user, and admin
		// accounts are off limits to each other.
		if !in.AsAdmin || !caller.IsAdmin() || target.IsAdmin() {
			return domain.ErrForbidden
		}
	}

	// The old password is always verified against the caller's own hash:
	// for a self change that is the target's hash, for an admin changing a
	// tenant user's password it is the admin's credential.
	if bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(in.OldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash password: %w", err)
	}

	target.PasswordHash = string(hash)
	target.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, target); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.invalidate(ctx, target.ID)

	s.log.Info().Str("user_id", target.ID).Str("changed_by", caller.ID).Msg("password changed")
	return nil
}

func (s *accountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	id, err := s.issuer.Subject(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Single active session: only the most recently issued token matches
	// the one stored on the record.
	if user.Token == "" || user.Token != token {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, domain.ErrUserDisabled
	}

	return user, nil
}

// issueToken mints a fresh token for the user, persists it on the record,
// and refreshes the cache. Any previously active token stops matching.
func (s *accountService) issueToken(ctx context.Context, user *domain.User) error {
	token, err := s.issuer.Issue(user)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	user.Token = token
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache set failed")
	}
	return nil
}

// lookup reads the user through the cache, falling back to the repository.
func (s *accountService) lookup(ctx context.Context, id string) (*domain.User, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("user cache get failed")
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("user cache set failed")
	}
	return user, nil
}

func (s *accountService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("user cache invalidate failed")
	}
}

func validateUsername(username string) error {
	if l := len(username); l < domain.UsernameMinLen || l > domain.UsernameMaxLen {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			domain.ErrValidation, domain.UsernameMinLen, domain.UsernameMaxLen)
	}
	return nil
}

func validatePassword(password string) error {
	if l := len(password); l < domain.PasswordMinLen || l > domain.PasswordMaxLen {
		return fmt.Errorf("%w: password must be between %d and %d characters",
			domain.ErrValidation, domain.PasswordMinLen, domain.PasswordMaxLen)
	}
	return nil
}
