package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/token"
)

func performRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuth_ValidToken(t *testing.T) {
	codec := token.NewCodec("test-secret", 15*time.Minute)
	access, err := codec.Issue("alice", []string{domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, c := performRequest(t, Auth(codec), "Bearer "+access)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := c.Get("username"); got != "alice" {
		t.Errorf("expected username claim in context, got %v", got)
	}
	roles, _ := c.Get("roles").([]string)
	if len(roles) != 1 || roles[0] != domain.RoleCustomer {
		t.Errorf("expected roles claim in context, got %v", roles)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	codec := token.NewCodec("test-secret", 15*time.Minute)
	rec, _ := performRequest(t, Auth(codec), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	codec := token.NewCodec("test-secret", 15*time.Minute)
	for _, header := range []string{"Bearer", "Basic abc123", "justagarbagetoken"} {
		rec, _ := performRequest(t, Auth(codec), header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_WrongKey(t *testing.T) {
	codec := token.NewCodec("test-secret", 15*time.Minute)
	other := token.NewCodec("another-secret", 15*time.Minute)
	access, err := other.Issue("alice", []string{domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _ := performRequest(t, Auth(codec), "Bearer "+access)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
