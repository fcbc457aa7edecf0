package ports

import (
	"context"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

// UserRepository is the Credential Store. Implementations return
// domain.ErrUserNotFound from FindByEmail when no user matches, and
// domain.ErrEmailAlreadyRegistered from Create when the storage layer
// rejects a duplicate email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user and returns it with ID and CreatedAt assigned.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
