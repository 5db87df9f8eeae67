package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onlineshop/order-system/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid refresh token", domain.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"expired refresh token", domain.ErrRefreshTokenExpired, http.StatusUnauthorized},
		{"token verification failed", domain.ErrTokenVerificationFailed, http.StatusUnauthorized},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"cart empty", domain.ErrCartEmpty, http.StatusUnprocessableEntity},
		{"invalid transition wrapped", fmt.Errorf("%w (from PENDING to SHIPPED)", domain.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"echo http error", echo.NewHTTPError(http.StatusBadRequest, "bad input"), http.StatusBadRequest},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected a non-empty error message")
			}
		})
	}
}

// Internal failure details never leak to the client.
func TestHTTPErrorHandler_OpaqueInternalErrors(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("dial tcp 10.0.0.5:27017: connection refused"), c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("internal detail leaked: %q", resp.Error)
	}
}
