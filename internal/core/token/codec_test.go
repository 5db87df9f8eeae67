package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onlineshop/order-system/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCodec_IssueAndVerify(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCodec("secret", 15*time.Minute)
	c.now = fixedClock(issued)

	signed, err := c.Issue("alice", []string{domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleCustomer {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if !claims.IssuedAt.Equal(issued) {
		t.Fatalf("unexpected iat: %v", claims.IssuedAt)
	}
	if !claims.ExpiresAt.Equal(issued.Add(15 * time.Minute)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt)
	}
}

func TestCodec_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCodec("secret", 15*time.Minute)
	c.now = fixedClock(issued)

	signed, err := c.Issue("alice", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	exp := issued.Add(15 * time.Minute)

	// One second before expiry the token must still verify.
	c.now = fixedClock(exp.Add(-time.Second))
	if _, err := c.Verify(signed); err != nil {
		t.Fatalf("expected valid just before expiry, got %v", err)
	}

	// At the expiry instant the token must be rejected.
	c.now = fixedClock(exp)
	if _, err := c.Verify(signed); !errors.Is(err, domain.ErrTokenVerificationFailed) {
		t.Fatalf("expected ErrTokenVerificationFailed at expiry, got %v", err)
	}

	c.now = fixedClock(exp.Add(time.Hour))
	if _, err := c.Verify(signed); !errors.Is(err, domain.ErrTokenVerificationFailed) {
		t.Fatalf("expected ErrTokenVerificationFailed after expiry, got %v", err)
	}
}

func TestCodec_WrongKey(t *testing.T) {
	c := NewCodec("secret", time.Minute)
	signed, err := c.Issue("alice", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewCodec("other-secret", time.Minute)
	if _, err := other.Verify(signed); !errors.Is(err, domain.ErrTokenVerificationFailed) {
		t.Fatalf("expected ErrTokenVerificationFailed, got %v", err)
	}
}

func TestCodec_TamperedClaims(t *testing.T) {
	c := NewCodec("secret", time.Minute)
	signed, err := c.Issue("alice", []string{domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Swap the payload for one claiming an admin role; the original
	// signature no longer covers it.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "alice",
		"roles": []string{domain.RoleAdmin},
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Minute).Unix(),
	})
	forgedSigned, err := forged.SignedString([]byte("attacker-key"))
	if err != nil {
		t.Fatalf("sign forged: %v", err)
	}

	parts := strings.Split(signed, ".")
	forgedParts := strings.Split(forgedSigned, ".")
	tampered := strings.Join([]string{parts[0], forgedParts[1], parts[2]}, ".")

	if _, err := c.Verify(tampered); !errors.Is(err, domain.ErrTokenVerificationFailed) {
		t.Fatalf("expected ErrTokenVerificationFailed, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := NewCodec("secret", time.Minute)
	for _, in := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := c.Verify(in); !errors.Is(err, domain.ErrTokenVerificationFailed) {
			t.Fatalf("input %q: expected ErrTokenVerificationFailed, got %v", in, err)
		}
	}
}

func TestCodec_RejectsUnsignedAlg(t *testing.T) {
	c := NewCodec("secret", time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Minute).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := c.Verify(signed); !errors.Is(err, domain.ErrTokenVerificationFailed) {
		t.Fatalf("expected ErrTokenVerificationFailed, got %v", err)
	}
}
