package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the client identity inside a reconnect token. Subject is
// the client ID.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ClientID returns the client identifier the token was issued for.
func (c *Claims) ClientID() string {
	return c.Subject
}

// Manager mints and verifies the HS256 tokens clients present to resume
// their state after a reconnect. This is identity plumbing, not
// authentication: login itself accepts any display name.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a token binding the client ID and display name.
func (m *Manager) Issue(clientID, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token and returns its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
