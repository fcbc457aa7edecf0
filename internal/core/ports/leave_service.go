package ports

import (
	"context"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

// ApplyLeaveInput is the DTO passed from the transport layer to LeaveService.Apply.
type ApplyLeaveInput struct {
	LeaveType string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Reason    string
}

type LeaveService interface {
	Apply(ctx context.Context, requester domain.Identity, input ApplyLeaveInput) (*domain.Leave, error)
	ListMine(ctx context.Context, requester domain.Identity) ([]*domain.Leave, error)
	ListAll(ctx context.Context) ([]*domain.Leave, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, requester domain.Identity, id int64) error
}
