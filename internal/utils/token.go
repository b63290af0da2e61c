package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// SessionToken represents a signed HS256 JWT carried in the session cookie
// along with its expiry.  One token covers the whole session; there is no
// refresh flow, the client simply logs in again after expiry.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the expiration time
}

// ErrInvalidToken is returned when a session token fails signature, expiry
// or claim-shape validation.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs a session JWT for a user.  The claims
// carry the subject (user ID), email and role so middleware can attach the
// identity to a request without a database round trip.
func NewSessionToken(secret string, userID uint64, email, role string, ttlDays int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a raw session JWT and returns the user ID,
// email and role it carries.  Any parse, signature or expiry failure is
// reported as ErrInvalidToken.
func ParseSessionToken(secret, raw string) (uint64, string, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", ErrInvalidToken
	}
	// Numeric claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", "", ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		return 0, "", "", ErrInvalidToken
	}
	return uint64(sub), email, role, nil
}
