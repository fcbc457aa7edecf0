package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is the JWT payload: the user id, the role, and the registered iat/exp pair.
type Claims struct {
	UserID int64       `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens signed with a single secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

// NewTokenManager fails with domain.ErrMissingSigningSecret when secret is empty.
func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	m := &TokenManager{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *TokenManager) Issue(userID int64, role domain.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// A token is still valid at exactly exp and expired once the clock passes it.
// Errors are always one of domain.ErrInvalidSignature, domain.ErrTokenExpired
// or domain.ErrMalformedToken.
func (m *TokenManager) Verify(token string) (*domain.Identity, error) {
	claims := &Claims{}
	// Claims are validated below; the parser still enforces the method and signature.
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, domain.ErrInvalidSignature
	default:
		return nil, domain.ErrMalformedToken
	}

	if claims.ExpiresAt == nil {
		return nil, domain.ErrMalformedToken
	}
	if m.now().After(claims.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}
	if claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, domain.ErrMalformedToken
	}
	return &domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
