package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

type LeaveService struct {
	repo   ports.LeaveRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewLeaveService(repo ports.LeaveRepository, logger zerolog.Logger) *LeaveService {
	return &LeaveService{repo: repo, logger: logger, now: time.Now}
}

// Apply files a PENDING leave for the requester.
func (s *LeaveService) Apply(ctx context.Context, requester domain.Identity, input ports.ApplyLeaveInput) (*domain.Leave, error) {
	leaveType, err := domain.ParseLeaveType(input.LeaveType)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(domain.DateLayout, input.StartDate, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidLeavePeriod
	}
	end, err := time.ParseInLocation(domain.DateLayout, input.EndDate, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidLeavePeriod
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidLeavePeriod
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidLeaveReason
	}

	now := s.now().UTC()
	leave, err := s.repo.Create(ctx, &domain.Leave{
		UserID:    requester.UserID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    domain.LeavePending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", requester.UserID).Msg("failed to create leave")
		return nil, err
	}

	s.logger.Info().Int64("leave_id", leave.ID).Int64("user_id", requester.UserID).Str("leave_type", string(leaveType)).Msg("leave applied")
	return leave, nil
}

func (s *LeaveService) ListMine(ctx context.Context, requester domain.Identity) ([]*domain.Leave, error) {
	return s.repo.ListByUser(ctx, requester.UserID)
}

func (s *LeaveService) ListAll(ctx context.Context) ([]*domain.Leave, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus moves a leave along PENDING -> APPROVED | REJECTED.
func (s *LeaveService) UpdateStatus(ctx context.Context, id int64, status string) error {
	next := domain.LeaveStatus(status)

	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !leave.Status.CanTransitionTo(next) {
		s.logger.Warn().Int64("leave_id", id).Str("from", string(leave.Status)).Str("to", status).Msg("invalid status transition")
		return domain.ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, leave.Status, next, s.now().UTC()); err != nil {
		return err
	}

	s.logger.Info().Int64("leave_id", id).Str("status", status).Msg("leave status updated")
	return nil
}

// Delete removes a leave. HR may delete any leave; everyone else only their own.
func (s *LeaveService) Delete(ctx context.Context, requester domain.Identity, id int64) error {
	var ownerID int64
	if requester.Role != domain.RoleHR {
		ownerID = requester.UserID
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info().Int64("leave_id", id).Int64("user_id", requester.UserID).Msg("leave deleted")
	return nil
}
