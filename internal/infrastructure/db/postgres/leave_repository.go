package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

type LeaveRepository struct {
	pool *pgxpool.Pool
}

const leaveColumns = `l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status, l.created_at, l.updated_at`

func (r *LeaveRepository) Create(ctx context.Context, l *domain.Leave) (*domain.Leave, error) {
	const query = `
		INSERT INTO leaves AS l (user_id, leave_type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveColumns + `;`

	row := r.pool.QueryRow(ctx, query,
		l.UserID, string(l.LeaveType), l.StartDate, l.EndDate, l.Reason, string(l.Status), l.CreatedAt, l.UpdatedAt)
	created, err := scanLeave(row)
	if err != nil {
		return nil, fmt.Errorf("insert leave: %w", err)
	}
	return created, nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id int64) (*domain.Leave, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leaves l WHERE l.id = $1;`

	l, err := scanLeave(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave: %w", err)
	}
	return l, nil
}

func (r *LeaveRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Leave, error) {
	const query = `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, l.id DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return collectLeaves(rows, false)
}

func (r *LeaveRepository) ListAll(ctx context.Context) ([]*domain.Leave, error) {
	const query = `
		SELECT ` + leaveColumns + `, u.name
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC, l.id DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all leaves: %w", err)
	}
	return collectLeaves(rows, true)
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.LeaveStatus, at time.Time) error {
	const query = `UPDATE leaves SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2;`

	tag, err := r.pool.Exec(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leaves WHERE id = $1);`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check leave: %w", err)
	}
	if !exists {
		return domain.ErrLeaveNotFound
	}
	return domain.ErrInvalidStatusTransition
}

func (r *LeaveRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM leaves WHERE id = $1;`
	args := []any{id}
	if ownerID != 0 {
		query = `DELETE FROM leaves WHERE id = $1 AND user_id = $2;`
		args = append(args, ownerID)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLeaveNotFound
	}
	return nil
}

func scanLeave(row pgx.Row, extra ...any) (*domain.Leave, error) {
	var (
		l                 domain.Leave
		leaveType, status string
	)
	dest := append([]any{&l.ID, &l.UserID, &leaveType, &l.StartDate, &l.EndDate, &l.Reason, &status, &l.CreatedAt, &l.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	l.LeaveType = domain.LeaveType(leaveType)
	l.Status = domain.LeaveStatus(status)
	l.StartDate = l.StartDate.UTC()
	l.EndDate = l.EndDate.UTC()
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

func collectLeaves(rows pgx.Rows, withName bool) ([]*domain.Leave, error) {
	defer rows.Close()

	out := make([]*domain.Leave, 0)
	for rows.Next() {
		var (
			name string
			l    *domain.Leave
			err  error
		)
		if withName {
			l, err = scanLeave(rows, &name)
		} else {
			l, err = scanLeave(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		l.EmployeeName = name
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaves: %w", err)
	}
	return out, nil
}
