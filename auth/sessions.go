package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/errs"
)

const issuer = "portfolio-backend"

// Claims identify the admin a session token was issued to.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is the client view of an issued token.
type Session struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Sessions issues and verifies HS256 session tokens. Verification keeps no state.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given identity.
func (s *Sessions) Issue(name, email string) (string, Session, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, Session{Name: name, Email: email, ExpiresAt: expires.UTC().Truncate(time.Second)}, nil
}

// Verify checks signature, algorithm, issuer and expiry of a token.
func (s *Sessions) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errs.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(errs.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

// Session returns the client view of verified claims.
func (c *Claims) Session() Session {
	var expires time.Time
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Time.UTC()
	}
	return Session{Name: c.Name, Email: c.Email, ExpiresAt: expires}
}
