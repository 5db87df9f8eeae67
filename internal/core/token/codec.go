// Package token implements the access-token codec: short-lived signed
// JWTs carrying subject identity and role claims. Verification is a
// pure function of the token string and the clock; it performs no I/O.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onlineshop/order-system/internal/core/domain"
)

const defaultAccessTTL = 15 * time.Minute

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies access tokens with a symmetric key. The
// signature covers the full claim set, so tampering with subject,
// roles, or timestamps invalidates verification.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed token for the subject with issued-at = now
// and expires-at = now + TTL.
func (c *Codec) Issue(subject string, roles []string) (string, error) {
	now := c.now().UTC()
	claims := jwt.MapClaims{
		"sub":   subject,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string. It fails with
// domain.ErrTokenVerificationFailed when the signature does not match,
// the structure is malformed, or the token is expired (exp <= now).
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, mapClaims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenVerificationFailed
	}

	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return nil, domain.ErrTokenVerificationFailed
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrTokenVerificationFailed
	}
	iat, err := mapClaims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, domain.ErrTokenVerificationFailed
	}

	return &Claims{
		Subject:   subject,
		Roles:     rolesClaim(mapClaims),
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}, nil
}

// rolesClaim extracts the roles claim, which decodes as []interface{}.
func rolesClaim(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
