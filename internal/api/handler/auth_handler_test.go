package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/api/middleware"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type stubAuthService struct {
	signupFn         func(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.SessionResult, error)
	meFn             func(ctx context.Context, caller domain.Caller) (*domain.User, error)
	changePasswordFn func(ctx context.Context, caller domain.Caller, oldPassword, newPassword string) error
	updateProfileFn  func(ctx context.Context, caller domain.Caller, input ports.UpdateProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	return s.meFn(ctx, caller)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, caller domain.Caller, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, caller, oldPassword, newPassword)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, caller domain.Caller, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, caller, input)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, caller domain.Caller) echo.Context {
	c.Set(middleware.CallerKey, caller)
	return c
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error) {
			if input.Email != "alice@example.com" || input.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.SessionResult{
				Token: "token123",
				User:  &domain.User{ID: "u1", Email: input.Email, Name: input.Name, Role: domain.RoleAdmin, PasswordHash: "secret-hash"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/signup", `{"email":"alice@example.com","password":"secret1","name":"Alice"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/auth/signup", `{"email":"bob@example.com","password":"secret1","name":"Bob"}`)
	if err := handler.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for name, body := range map[string]string{
		"not json":       "not-json",
		"bad email":      `{"email":"nope","password":"secret1","name":"Bob"}`,
		"short password": `{"email":"bob@example.com","password":"123","name":"Bob"}`,
		"missing name":   `{"email":"bob@example.com","password":"secret1"}`,
	} {
		c, _ := newTestContext(http.MethodPost, "/api/auth/signup", body)
		if code := httpErrorCode(t, handler.Signup(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.SessionResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.SessionResult{Token: "token123", User: &domain.User{ID: "u1", Role: domain.RoleClient}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrAccountDisabled, domain.ErrTooManyAttempts} {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.SessionResult, error) {
				return nil, want
			},
		}
		c, _ := newTestContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`)
		if err := NewAuthHandler(stub).Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Me_RequiresCaller(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, caller domain.Caller) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/auth/me", "")
	if code := httpErrorCode(t, NewAuthHandler(stub).Me(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, caller domain.Caller) (*domain.User, error) {
			return &domain.User{ID: caller.ID, Role: caller.Role}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/auth/me", "")
	withCaller(c, domain.Caller{ID: "u7", Role: domain.RoleEmployee})

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u7" || resp.User.Role != domain.RoleEmployee {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var gotOld, gotNew string
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, caller domain.Caller, oldPassword, newPassword string) error {
			gotOld, gotNew = oldPassword, newPassword
			return nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/auth/change-password", `{"oldPassword":"before1","newPassword":"after12"}`)
	withCaller(c, domain.Caller{ID: "u1", Role: domain.RoleClient})

	if err := NewAuthHandler(stub).ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotOld != "before1" || gotNew != "after12" {
		t.Fatalf("unexpected args: %q %q", gotOld, gotNew)
	}
	if !strings.Contains(rec.Body.String(), "password updated") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_UpdateProfile_PassesOnlySentFields(t *testing.T) {
	stub := &stubAuthService{
		updateProfileFn: func(ctx context.Context, caller domain.Caller, input ports.UpdateProfileInput) (*domain.User, error) {
			if input.Phone == nil || *input.Phone != "555-0100" {
				t.Fatalf("expected phone, got %+v", input.Phone)
			}
			if input.Name != nil || input.Address != nil {
				t.Fatalf("unexpected fields set: %+v", input)
			}
			return &domain.User{ID: caller.ID}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/api/auth/profile", `{"phone":"555-0100"}`)
	withCaller(c, domain.Caller{ID: "u1", Role: domain.RoleClient})

	if err := NewAuthHandler(stub).UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
