package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/accounts-api/internal/api"
	"github.com/shopstack/accounts-api/internal/api/handler"
	"github.com/shopstack/accounts-api/internal/core/domain"
	"github.com/shopstack/accounts-api/internal/core/ports"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (*domain.User, error)
	addUserFn        func(ctx context.Context, caller *domain.User, in ports.AddUserInput) (*domain.User, error)
	suspendUserFn    func(ctx context.Context, caller *domain.User, targetID string) error
	changePasswordFn func(ctx context.Context, caller *domain.User, in ports.ChangePasswordInput) error
}

func (s *stubAccountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAccountService) AddUser(ctx context.Context, caller *domain.User, in ports.AddUserInput) (*domain.User, error) {
	return s.addUserFn(ctx, caller, in)
}

func (s *stubAccountService) SuspendUser(ctx context.Context, caller *domain.User, targetID string) error {
	return s.suspendUserFn(ctx, caller, targetID)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, caller *domain.User, in ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, caller, in)
}

func (s *stubAccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	panic("not used")
}

// newTestServer wires the handler behind the real validator and error
// handler; caller, when non-nil, is injected into context the way the Auth
// middleware would.
func newTestServer(svc ports.AccountService, caller *domain.User) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if caller != nil {
				c.Set("user", caller)
			}
			return next(c)
		}
	}

	h := handler.NewAccountHandler(svc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/add_user", h.AddUser, inject)
	e.PUT("/auth/suspend_user/:id", h.SuspendUser, inject)
	e.POST("/auth/change_password/admin", h.ChangePasswordAdmin, inject)
	e.POST("/auth/change_password/user", h.ChangePasswordUser, inject)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return body
}

func TestAccountHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(_ context.Context, username, password string) (*domain.User, error) {
			if username != "Test_user" || password != "Test12345_" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{
				ID:       "user-1",
				Username: username,
				Token:    "token123",
				Roles:    []domain.Role{domain.RoleUser, domain.RoleAdmin},
			}, nil
		},
	}
	e := newTestServer(stub, nil)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"Test_user","password":"Test12345_"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["id"] != "user-1" || body["username"] != "Test_user" || body["token"] != "token123" {
		t.Fatalf("unexpected payload: %v", body)
	}
	roles, _ := body["roles"].([]any)
	found := false
	for _, r := range roles {
		if r == string(domain.RoleAdmin) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ROLE_ADMIN in roles, got %v", roles)
	}
}

func TestAccountHandler_Register_ValidationRejectedBeforeService(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e := newTestServer(stub, nil)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"ab","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_UsernameTaken(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	e := newTestServer(stub, nil)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"Test_user","password":"Test12345_"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Username is already taken" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestAccountHandler_Login_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrUserNotFound, http.StatusBadRequest},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled", domain.ErrUserDisabled, http.StatusForbidden},
	}

	for _, tc := range cases {
		stub := &stubAccountService{
			loginFn: func(context.Context, string, string) (*domain.User, error) {
				return nil, tc.err
			},
		}
		e := newTestServer(stub, nil)

		rec := doJSON(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"password123"}`)
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, rec.Code)
		}
	}
}

func TestAccountHandler_Login_Success(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(_ context.Context, username, password string) (*domain.User, error) {
			return &domain.User{
				ID:       "user-1",
				Username: username,
				Token:    "token456",
				Roles:    []domain.Role{domain.RoleUser},
			}, nil
		},
	}
	e := newTestServer(stub, nil)

	rec := doJSON(e, http.MethodPost, "/auth/login", `{"username":"testUser","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["token"] != "token456" {
		t.Fatalf("expected token in response, got %v", body)
	}
}

func TestAccountHandler_AddUser_Success(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}
	stub := &stubAccountService{
		addUserFn: func(_ context.Context, caller *domain.User, in ports.AddUserInput) (*domain.User, error) {
			if caller.ID != "admin-1" {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if in.Username != "testUser" || in.ShopID != "shop-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:       "user-2",
				Username: in.Username,
				ShopID:   in.ShopID,
				Roles:    []domain.Role{domain.RoleUser},
			}, nil
		},
	}
	e := newTestServer(stub, admin)

	rec := doJSON(e, http.MethodPost, "/auth/add_user", `{"username":"testUser","password":"password123","shopId":"shop-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	roles, _ := body["roles"].([]any)
	if len(roles) != 1 || roles[0] != string(domain.RoleUser) {
		t.Fatalf("expected roles {ROLE_USER}, got %v", roles)
	}
}

func TestAccountHandler_AddUser_Forbidden(t *testing.T) {
	user := &domain.User{ID: "user-1", Roles: []domain.Role{domain.RoleUser}}
	stub := &stubAccountService{
		addUserFn: func(context.Context, *domain.User, ports.AddUserInput) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	e := newTestServer(stub, user)

	rec := doJSON(e, http.MethodPost, "/auth/add_user", `{"username":"testUser","password":"password123","shopId":"shop-1"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Forbidden request" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestAccountHandler_SuspendUser_Success(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
	var suspended string
	stub := &stubAccountService{
		suspendUserFn: func(_ context.Context, _ *domain.User, targetID string) error {
			suspended = targetID
			return nil
		},
	}
	e := newTestServer(stub, admin)

	rec := doJSON(e, http.MethodPut, "/auth/suspend_user/user-7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if suspended != "user-7" {
		t.Fatalf("expected target user-7, got %q", suspended)
	}
	if body := decodeBody(t, rec); body["message"] != "User suspended" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAccountHandler_SuspendUser_NotFound(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
	stub := &stubAccountService{
		suspendUserFn: func(context.Context, *domain.User, string) error {
			return domain.ErrUserNotFound
		},
	}
	e := newTestServer(stub, admin)

	rec := doJSON(e, http.MethodPut, "/auth/suspend_user/user-404", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Error: User not found." {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestAccountHandler_ChangePassword_VariantFlag(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}

	var gotAsAdmin []bool
	stub := &stubAccountService{
		changePasswordFn: func(_ context.Context, _ *domain.User, in ports.ChangePasswordInput) error {
			gotAsAdmin = append(gotAsAdmin, in.AsAdmin)
			return nil
		},
	}
	e := newTestServer(stub, admin)

	payload := `{"targetId":"admin-1","oldPassword":"password","newPassword":"newPassword"}`
	if rec := doJSON(e, http.MethodPost, "/auth/change_password/admin", payload); rec.Code != http.StatusOK {
		t.Fatalf("admin variant: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/auth/change_password/user", payload); rec.Code != http.StatusOK {
		t.Fatalf("user variant: expected 200, got %d", rec.Code)
	}

	if len(gotAsAdmin) != 2 || gotAsAdmin[0] != true || gotAsAdmin[1] != false {
		t.Fatalf("expected variants [true false], got %v", gotAsAdmin)
	}
}

func TestAccountHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
	stub := &stubAccountService{
		changePasswordFn: func(context.Context, *domain.User, ports.ChangePasswordInput) error {
			return domain.ErrInvalidCredentials
		},
	}
	e := newTestServer(stub, admin)

	rec := doJSON(e, http.MethodPost, "/auth/change_password/admin",
		`{"targetId":"admin-1","oldPassword":"wrongpass","newPassword":"newPassword"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_ProtectedRoute_MissingCaller(t *testing.T) {
	stub := &stubAccountService{
		addUserFn: func(context.Context, *domain.User, ports.AddUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e := newTestServer(stub, nil)

	rec := doJSON(e, http.MethodPost, "/auth/add_user", `{"username":"testUser","password":"password123","shopId":"shop-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
