package handler

import "github.com/shopstack/accounts-api/internal/core/domain"

// Field names follow the public API contract (camelCase bodies, the
// id/username/token/roles response shape).

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=8,max=40"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type addUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=8,max=40"`
	ShopID   string `json:"shopId"   validate:"required"`
}

type changePasswordRequest struct {
	TargetID    string `json:"targetId"    validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=40"`
}

type authResponse struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Token    string        `json:"token"`
	Roles    []domain.Role `json:"roles"`
}

type userCreatedResponse struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	ShopID   string        `json:"shopId"`
	Roles    []domain.Role `json:"roles"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newAuthResponse(u *domain.User) authResponse {
	return authResponse{
		ID:       u.ID,
		Username: u.Username,
		Token:    u.Token,
		Roles:    u.Roles,
	}
}
