package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaims is the payload encoded into a session token.
type SessionClaims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer mints and validates signed session tokens. The signing key is
// immutable process-wide state; construction fails when it is absent so the
// process never runs with an implicit default key.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionIssuer(secret string) (*SessionIssuer, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret must not be empty")
	}
	return &SessionIssuer{secret: []byte(secret), ttl: SessionTTL}, nil
}

// Issue signs a token encoding the user id and role, valid for SessionTTL.
func (s *SessionIssuer) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature and expiry. An expired but otherwise well-formed
// token fails with domain.ErrTokenExpired; every other failure collapses into
// domain.ErrTokenInvalid so the two causes are the only distinction exposed.
func (s *SessionIssuer) Validate(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
