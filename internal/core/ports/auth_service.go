package ports

import (
	"context"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

// PasswordHasher performs one-way salted hashing. Verify never errors: any
// mismatch or malformed hash yields false.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// TokenIssuer signs and validates bearer tokens carrying identity and role.
type TokenIssuer interface {
	Issue(userID int64, role domain.Role) (string, error)
	TokenVerifier
}

// TokenVerifier is the read side of TokenIssuer, which is all the Access Guard needs.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  domain.Profile
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
