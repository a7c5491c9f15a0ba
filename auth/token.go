/*
Package auth owns passwords and login sessions.

PURPOSE:
  Every page past the login screen is gated. Passwords are stored as
  bcrypt hashes; a successful login yields a signed JWT that the client
  presents either as a Bearer header or as the session cookie the login
  handler sets.

TOKENS:
  HMAC-SHA256 JWTs carrying the user id and username. Expiry comes from
  the configured session TTL. Tokens are stateless: logout clears the
  cookie, it does not revoke outstanding tokens.

SEE ALSO:
  - middleware.go: RequireAuth for chi routers
  - api/handlers.go: login/logout/change-password endpoints
*/
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the login handler sets.
const SessionCookie = "vacation_session"

// ErrInvalidToken is returned for tokens that fail validation for any
// reason: bad signature, wrong method, expired, malformed.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service issues and validates session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. The secret signs every token;
// rotating it invalidates all outstanding sessions.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(userID, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
