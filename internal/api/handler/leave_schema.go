package handler

import (
	"time"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

type applyLeaveRequest struct {
	LeaveType string `json:"leaveType" validate:"omitempty,oneof=SICK CASUAL"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate"   validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"    validate:"required,max=1000"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// leaveResponse mirrors the leave row. employeeName is only set on the HR listing.
type leaveResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	LeaveType    string    `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	EmployeeName string    `json:"employeeName,omitempty"`
}

type applyLeaveResponse struct {
	Message string        `json:"message"`
	Leave   leaveResponse `json:"leave"`
}

func (r applyLeaveRequest) toInput() ports.ApplyLeaveInput {
	return ports.ApplyLeaveInput{
		LeaveType: r.LeaveType,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
	}
}

func toLeaveResponse(l *domain.Leave) leaveResponse {
	return leaveResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		LeaveType:    string(l.LeaveType),
		StartDate:    l.StartDate.Format(domain.DateLayout),
		EndDate:      l.EndDate.Format(domain.DateLayout),
		Reason:       l.Reason,
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		EmployeeName: l.EmployeeName,
	}
}

func toLeaveResponses(leaves []*domain.Leave) []leaveResponse {
	out := make([]leaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, toLeaveResponse(l))
	}
	return out
}
