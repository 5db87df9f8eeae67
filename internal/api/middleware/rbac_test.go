package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/onlineshop/order-system/internal/core/domain"
)

func rbacRequest(t *testing.T, mw echo.MiddlewareFunc, roles []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if roles != nil {
		c.Set("roles", roles)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		roles    []string
		wantCode int
	}{
		{"admin allowed", []string{domain.RoleAdmin}, []string{domain.RoleAdmin}, http.StatusOK},
		{"customer denied admin route", []string{domain.RoleAdmin}, []string{domain.RoleCustomer}, http.StatusForbidden},
		{"any of several roles", []string{domain.RoleAdmin, domain.RoleCustomer}, []string{domain.RoleCustomer}, http.StatusOK},
		{"no roles in context", []string{domain.RoleAdmin}, nil, http.StatusForbidden},
		{"empty role set", []string{domain.RoleAdmin}, []string{}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := rbacRequest(t, RBAC(tt.allowed...), tt.roles)
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}
