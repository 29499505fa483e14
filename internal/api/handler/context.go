package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

// currentUser extracts the caller injected by the Auth middleware. Its
// presence proves the middleware ran; a missing user on a protected route is
// a wiring bug surfaced as 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
