package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/domain/shared"
)

// Claims is the token payload carried for authenticated requests.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewManager creates a token manager
func NewManager(secret string, tokenTTL time.Duration) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Sign issues a token for the given user
func (m *Manager) Sign(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, shared.NewDomainError(shared.ErrUnauthorized, "token", "", "unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrUnauthorized, "token", "", "invalid or expired token")
	}
	if !token.Valid {
		return nil, shared.NewDomainError(shared.ErrUnauthorized, "token", "", "invalid token")
	}
	return claims, nil
}
