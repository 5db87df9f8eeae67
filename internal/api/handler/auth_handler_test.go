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

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/ports"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginPair    *ports.TokenPair
	loginErr     error
	refreshPair  *ports.TokenPair
	refreshErr   error
	logoutErr    error

	gotRegister ports.RegisterInput
	gotUsername string
	gotRefresh  string
	gotLogout   string
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.gotRegister = in
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (*ports.TokenPair, error) {
	s.gotUsername = username
	return s.loginPair, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, value string) (*ports.TokenPair, error) {
	s.gotRefresh = value
	return s.refreshPair, s.refreshErr
}

func (s *stubAuthService) Logout(_ context.Context, username string) error {
	s.gotLogout = username
	return s.logoutErr
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registerUser: &domain.User{ID: "user-1", Username: "alice"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, `{
		"username": "alice",
		"password": "s3cret-pass",
		"email": "alice@example.com",
		"first_name": "Alice",
		"last_name": "Smith"
	}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotRegister.Username != "alice" || svc.gotRegister.Email != "alice@example.com" {
		t.Errorf("input not forwarded: %+v", svc.gotRegister)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("expected username in response, got %+v", resp)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing password", `{"username":"alice","email":"alice@example.com","first_name":"A","last_name":"S"}`},
		{"short password", `{"username":"alice","password":"short","email":"alice@example.com","first_name":"A","last_name":"S"}`},
		{"bad email", `{"username":"alice","password":"s3cret-pass","email":"not-an-email","first_name":"A","last_name":"S"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthContext(t, tt.body)
			err := h.Register(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUsernameTaken}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(t, `{
		"username": "alice",
		"password": "s3cret-pass",
		"email": "alice@example.com",
		"first_name": "Alice",
		"last_name": "Smith"
	}`)

	// the domain error flows through for the central error handler to map
	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{loginPair: &ports.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-opaque"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var pair ports.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pair.AccessToken != "access-jwt" || pair.RefreshToken != "refresh-opaque" {
		t.Errorf("unexpected token pair: %+v", pair)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(t, `{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{refreshPair: &ports.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, `{"refresh_token":"old-refresh"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotRefresh != "old-refresh" {
		t.Errorf("expected raw value forwarded, got %q", svc.gotRefresh)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, `{}`)
	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, "")
	c.Set("username", "alice")
	c.Set("roles", []string{domain.RoleCustomer})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.gotLogout != "alice" {
		t.Errorf("expected logout for alice, got %q", svc.gotLogout)
	}
}

func TestAuthHandler_Logout_NoClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, "")
	err := h.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
