package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

// stubAccounts implements ports.AccountService; only Authenticate matters
// for the middleware.
type stubAccounts struct {
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAccounts) Register(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAccounts) Login(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAccounts) AddUser(context.Context, *domain.User, ports.AddUserInput) (*domain.User, error) {
	panic("not used")
}

func (s *stubAccounts) SuspendUser(context.Context, *domain.User, string) error {
	panic("not used")
}

func (s *stubAccounts) ChangePassword(context.Context, *domain.User, ports.ChangePasswordInput) error {
	panic("not used")
}

func (s *stubAccounts) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func runAuth(t *testing.T, accounts ports.AccountService, header string) (*httptest.ResponseRecorder, *domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	mw := Auth(accounts)
	err := mw(func(c echo.Context) error {
		seen, _ = c.Get("user").(*domain.User)
		return c.NoContent(http.StatusOK)
	})(c)

	return rec, seen, err
}

func TestAuth_MissingHeader(t *testing.T) {
	stub := &stubAccounts{authenticateFn: func(context.Context, string) (*domain.User, error) {
		t.Fatalf("should not be called")
		return nil, nil
	}}

	_, _, err := runAuth(t, stub, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_BearerPrefixStripped(t *testing.T) {
	var gotToken string
	stub := &stubAccounts{authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
		gotToken = token
		return &domain.User{ID: "user-1", Enabled: true}, nil
	}}

	_, seen, err := runAuth(t, stub, "Bearer token123")
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if gotToken != "token123" {
		t.Fatalf("expected stripped token, got %q", gotToken)
	}
	if seen == nil || seen.ID != "user-1" {
		t.Fatalf("expected user in context, got %+v", seen)
	}
}

func TestAuth_BareTokenAccepted(t *testing.T) {
	var gotToken string
	stub := &stubAccounts{authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
		gotToken = token
		return &domain.User{ID: "user-1", Enabled: true}, nil
	}}

	if _, _, err := runAuth(t, stub, "token123"); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if gotToken != "token123" {
		t.Fatalf("expected raw token forwarded, got %q", gotToken)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	stub := &stubAccounts{authenticateFn: func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrInvalidCredentials
	}}

	_, _, err := runAuth(t, stub, "Bearer bad-token")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_DisabledUser(t *testing.T) {
	stub := &stubAccounts{authenticateFn: func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrUserDisabled
	}}

	_, _, err := runAuth(t, stub, "Bearer token123")
	if err != domain.ErrUserDisabled {
		t.Fatalf("expected ErrUserDisabled passed through, got %v", err)
	}
}
