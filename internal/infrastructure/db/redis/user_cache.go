package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a Redis-backed cache of user records keyed by user id,
// consulted on every authenticated request before hitting MongoDB. Entries
// are invalidated explicitly on suspension and password change; token
// rotation overwrites the entry with the fresh record.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// cachedUser carries every field the domain type hides from JSON clients
// (the password hash in particular), so the cached record round-trips whole.
type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Enabled      bool      `json:"enabled"`
	Token        string    `json:"token,omitempty"`
	ShopID       string    `json:"shop_id,omitempty"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Get returns the cached user, or nil when the id is not cached.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}

	roles := make([]domain.Role, 0, len(cu.Roles))
	for _, r := range cu.Roles {
		roles = append(roles, domain.Role(r))
	}
	return &domain.User{
		ID:           cu.ID,
		Username:     cu.Username,
		PasswordHash: cu.PasswordHash,
		Enabled:      cu.Enabled,
		Token:        cu.Token,
		ShopID:       cu.ShopID,
		Roles:        roles,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}, nil
}

// Set stores the user record, replacing any previous entry (expires after
// userCacheTTL).
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Enabled:      user.Enabled,
		Token:        user.Token,
		ShopID:       user.ShopID,
		Roles:        roles,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, userCacheTTL).Err()
}

// Invalidate drops the cached record for the user.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id string) string {
	return fmt.Sprintf("user:%s", id)
}
