package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/accounts-api/internal/api/metrics"
	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register creates a self-registered (bootstrap admin) account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, newAuthResponse(user))
}

// Login verifies credentials and issues a fresh bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, newAuthResponse(user))
}

// AddUser creates a tenant-scoped user. Admin only.
//
// @Summary      Add a tenant user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addUserRequest  true  "New user details"
// @Success      200   {object}  userCreatedResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/add_user [post]
func (h *AccountHandler) AddUser(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.AddUser(c.Request().Context(), caller, ports.AddUserInput{
		Username: req.Username,
		Password: req.Password,
		ShopID:   req.ShopID,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusOK, userCreatedResponse{
		ID:       user.ID,
		Username: user.Username,
		ShopID:   user.ShopID,
		Roles:    user.Roles,
	})
}

// SuspendUser disables the target account. Admin only.
//
// @Summary      Suspend a user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/suspend_user/{id} [put]
func (h *AccountHandler) SuspendUser(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if targetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user id")
	}

	if err := h.accounts.SuspendUser(c.Request().Context(), caller, targetID); err != nil {
		return err
	}

	metrics.UsersSuspendedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User suspended"})
}

// ChangePasswordAdmin is the admin entry variant of the password change.
//
// @Summary      Change a password (admin variant)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change details"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/change_password/admin [post]
func (h *AccountHandler) ChangePasswordAdmin(c echo.Context) error {
	return h.changePassword(c, true)
}

// ChangePasswordUser is the self-service entry variant of the password change.
//
// @Summary      Change a password (user variant)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change details"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/change_password/user [post]
func (h *AccountHandler) ChangePasswordUser(c echo.Context) error {
	return h.changePassword(c, false)
}

func (h *AccountHandler) changePassword(c echo.Context, asAdmin bool) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.accounts.ChangePassword(c.Request().Context(), caller, ports.ChangePasswordInput{
		TargetID:    req.TargetID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		AsAdmin:     asAdmin,
	})
	if err != nil {
		return err
	}

	variant := "user"
	if asAdmin {
		variant = "admin"
	}
	metrics.PasswordChangesTotal.WithLabelValues(variant).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUserDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	default:
		return "error"
	}
}
