// Package session issues and verifies the stateless, signed session tokens
// that carry a caller's identity across requests.
//
// Tokens are HS256 JWTs: a base64url header segment and a base64url claims
// segment, signed with HMAC-SHA-256 over "header.claims" using a process-wide
// secret. Verification compares signatures in constant time and rejects
// expired tokens. Claims are trusted for the whole lifetime of the token; role
// changes and account disabling take effect on the next login.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// DefaultLifetime is the session lifetime used when none is configured.
const DefaultLifetime = 7 * 24 * time.Hour

var (
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	ErrTokenExpired = fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
)

// Claims is the identity asserted by a session token.
type Claims struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Caller converts the claims into the identity the authorization layer
// evaluates. Tokens never carry the disabled flag; only enabled identities
// are issued one.
func (c *Claims) Caller() domain.Caller {
	return domain.Caller{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec signing with secret. A non-positive lifetime falls
// back to DefaultLifetime.
func NewCodec(secret []byte, lifetime time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("session: signing secret is required")
	}
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	c := &Codec{
		secret:   append([]byte(nil), secret...),
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lifetime returns the configured session lifetime.
func (c *Codec) Lifetime() time.Duration { return c.lifetime }

// Issue signs a token for caller, valid from now until now+lifetime.
func (c *Codec) Issue(caller domain.Caller) (string, time.Time, error) {
	if caller.ID == "" || !caller.Role.Valid() {
		return "", time.Time{}, errors.New("session: caller id and a valid role are required")
	}

	now := c.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(c.lifetime)

	claims := Claims{
		UserID: caller.ID,
		Email:  caller.Email,
		Role:   caller.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the token's structure, signature and expiry and returns its
// claims.
func (c *Codec) Verify(token string) (*Claims, error) {
	if strings.Count(token, ".") != 2 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
