package domain

import (
	"errors"
	"time"
)

// LeaveStatus represents the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// LeaveType is the kind of absence being requested.
type LeaveType string

const (
	LeaveSick   LeaveType = "SICK"
	LeaveCasual LeaveType = "CASUAL"
)

// DateLayout is the wire and storage format for leave dates.
const DateLayout = "2006-01-02"

var (
	ErrLeaveNotFound           = errors.New("leave not found")
	ErrInvalidLeaveType        = errors.New("invalid leave type")
	ErrInvalidLeavePeriod      = errors.New("end date must not be before start date")
	ErrInvalidLeaveReason      = errors.New("reason must not be blank")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// validTransitions defines the review state machine. APPROVED and REJECTED are terminal.
var validTransitions = map[LeaveStatus][]LeaveStatus{
	LeavePending: {LeaveApproved, LeaveRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseLeaveType maps raw input to a LeaveType; empty input means CASUAL.
func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(s) {
	case "":
		return LeaveCasual, nil
	case LeaveSick, LeaveCasual:
		return LeaveType(s), nil
	default:
		return "", ErrInvalidLeaveType
	}
}

// Leave is a single leave request owned by one user.
type Leave struct {
	ID           int64
	UserID       int64
	LeaveType    LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       LeaveStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	EmployeeName string // populated only by listings that join users
}
