// Package auth issues and verifies the signed bearer tokens that carry the
// caller's identity.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pizza-storefront/internal/domain"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.Role
}

// IsAdmin reports whether the caller may manage orders.
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// SessionID keys the caller's cart.
func (i Identity) SessionID() string {
	return strconv.FormatInt(i.UserID, 10)
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and parses HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for u.
func (i *Issuer) Issue(u domain.User) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	return token.SignedString(i.secret)
}

// Parse verifies raw and returns the identity it carries. Any failure is
// reported as domain.ErrUnauthenticated.
func (i *Issuer) Parse(raw string) (Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, fmt.Errorf("%w: bad subject %q", domain.ErrUnauthenticated, c.Subject)
	}
	role := domain.Role(c.Role)
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return Identity{}, fmt.Errorf("%w: bad role %q", domain.ErrUnauthenticated, c.Role)
	}
	return Identity{UserID: id, Username: c.Username, Role: role}, nil
}
