package ports

import (
	"context"
	"time"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

// LeaveRepository defines persistence operations for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.Leave) (*domain.Leave, error)
	FindByID(ctx context.Context, id int64) (*domain.Leave, error)
	// ListByUser returns the user's leaves, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Leave, error)
	// ListAll returns every leave, newest first, with EmployeeName filled in.
	ListAll(ctx context.Context) ([]*domain.Leave, error)
	// UpdateStatus sets the new status only while the stored status still equals from.
	// It returns domain.ErrInvalidStatusTransition when the stored status changed underneath.
	UpdateStatus(ctx context.Context, id int64, from, to domain.LeaveStatus, at time.Time) error
	// Delete removes the leave. When ownerID is non-zero, only a leave owned by
	// that user is removed; otherwise domain.ErrLeaveNotFound is returned.
	Delete(ctx context.Context, id, ownerID int64) error
}
