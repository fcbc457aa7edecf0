// Package storetest holds a behavioural suite shared by every store backend.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

// Run exercises users and leaves against the repository contracts. Emails are
// made unique per run so the suite can target a shared live database.
func Run(t *testing.T, users ports.UserRepository, leaves ports.LeaveRepository) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	var owner, other *domain.User

	t.Run("users", func(t *testing.T) {
		email := fmt.Sprintf("ann-%d@example.com", suffix)

		created, err := users.Create(ctx, &domain.User{Name: "Ann", Email: email, PasswordHash: "$2a$04$hash", Role: domain.RoleEmployee})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.ID <= 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at assigned, got %+v", created)
		}

		found, err := users.FindByEmail(ctx, email)
		if err != nil {
			t.Fatalf("FindByEmail: %v", err)
		}
		if found.ID != created.ID || found.Name != "Ann" || found.PasswordHash != "$2a$04$hash" || found.Role != domain.RoleEmployee {
			t.Fatalf("unexpected user: %+v", found)
		}

		if _, err := users.Create(ctx, &domain.User{Name: "Ann 2", Email: email, PasswordHash: "x", Role: domain.RoleHR}); !errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			t.Fatalf("expected ErrEmailAlreadyRegistered on duplicate, got %v", err)
		}

		if _, err := users.FindByEmail(ctx, fmt.Sprintf("ANN-%d@example.com", suffix)); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected case-sensitive lookup to miss, got %v", err)
		}

		owner = found
		other, err = users.Create(ctx, &domain.User{Name: "Ben", Email: fmt.Sprintf("ben-%d@example.com", suffix), PasswordHash: "x", Role: domain.RoleHR})
		if err != nil {
			t.Fatalf("Create second user: %v", err)
		}
	})

	if owner == nil || other == nil {
		t.Fatal("user setup failed")
	}

	t.Run("leaves", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

		first, err := leaves.Create(ctx, &domain.Leave{
			UserID: owner.ID, LeaveType: domain.LeaveSick, StartDate: start, EndDate: start.AddDate(0, 0, 1),
			Reason: "flu", Status: domain.LeavePending, CreatedAt: base, UpdatedAt: base,
		})
		if err != nil {
			t.Fatalf("Create leave: %v", err)
		}
		second, err := leaves.Create(ctx, &domain.Leave{
			UserID: owner.ID, LeaveType: domain.LeaveCasual, StartDate: start, EndDate: start,
			Reason: "errand", Status: domain.LeavePending, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("Create leave: %v", err)
		}

		got, err := leaves.FindByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.UserID != owner.ID || got.LeaveType != domain.LeaveSick || got.Reason != "flu" || !got.StartDate.Equal(start) {
			t.Fatalf("unexpected leave: %+v", got)
		}

		mine, err := leaves.ListByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListByUser: %v", err)
		}
		if len(mine) != 2 || mine[0].ID != second.ID || mine[1].ID != first.ID {
			t.Fatalf("expected [second, first] newest first, got %+v", mine)
		}

		all, err := leaves.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		var seen int
		for _, l := range all {
			if l.UserID == owner.ID {
				seen++
				if l.EmployeeName != "Ann" {
					t.Fatalf("expected employee name Ann, got %q", l.EmployeeName)
				}
			}
		}
		if seen != 2 {
			t.Fatalf("expected 2 leaves for owner in ListAll, got %d", seen)
		}

		at := base.Add(2 * time.Hour)
		if err := leaves.UpdateStatus(ctx, first.ID, domain.LeavePending, domain.LeaveApproved, at); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		got, _ = leaves.FindByID(ctx, first.ID)
		if got.Status != domain.LeaveApproved || !got.UpdatedAt.Equal(at) {
			t.Fatalf("expected APPROVED at %v, got %s at %v", at, got.Status, got.UpdatedAt)
		}
		if err := leaves.UpdateStatus(ctx, first.ID, domain.LeavePending, domain.LeaveRejected, at); !errors.Is(err, domain.ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition on stale status, got %v", err)
		}
		if err := leaves.UpdateStatus(ctx, -1, domain.LeavePending, domain.LeaveApproved, at); !errors.Is(err, domain.ErrLeaveNotFound) {
			t.Fatalf("expected ErrLeaveNotFound, got %v", err)
		}

		if err := leaves.Delete(ctx, second.ID, other.ID); !errors.Is(err, domain.ErrLeaveNotFound) {
			t.Fatalf("expected ErrLeaveNotFound deleting another user's leave, got %v", err)
		}
		if err := leaves.Delete(ctx, second.ID, owner.ID); err != nil {
			t.Fatalf("Delete own leave: %v", err)
		}
		if err := leaves.Delete(ctx, first.ID, 0); err != nil {
			t.Fatalf("Delete without owner filter: %v", err)
		}
		if _, err := leaves.FindByID(ctx, first.ID); !errors.Is(err, domain.ErrLeaveNotFound) {
			t.Fatalf("expected deleted leave gone, got %v", err)
		}
	})
}
