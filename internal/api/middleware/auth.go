package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/accounts-api/internal/api/metrics"
	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

// Auth resolves the bearer token to a user and injects it into context.
// The token must match the user's stored active token and the account must
// be enabled; suspension therefore takes effect on the next request, not
// only at the next login. Both "Authorization: Bearer <token>" and a bare
// "Authorization: <token>" header are accepted.
func Auth(accounts ports.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := authHeader
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}

			user, err := accounts.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUserDisabled) {
					metrics.TokenAuthTotal.WithLabelValues("disabled").Inc()
					return err
				}
				metrics.TokenAuthTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenAuthTotal.WithLabelValues("ok").Inc()
			c.Set("user", user)

			return next(c)
		}
	}
}
