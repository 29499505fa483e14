package domain

import "time"

// Role is a coarse permission grant attached to a user.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Username and password length constraints, enforced at the HTTP layer and
// re-checked by the account service.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	PasswordMinLen = 8
	PasswordMaxLen = 40
)

// User models an account on the platform. Token holds the single active
// bearer token; it stays empty until the user first registers or logs in and
// is overwritten on every login. ShopID is empty for bootstrap admins created
// through self-registration.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Token        string    `json:"token,omitempty"`
	ShopID       string    `json:"shop_id,omitempty"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds ROLE_ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
