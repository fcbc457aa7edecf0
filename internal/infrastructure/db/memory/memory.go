// Package memory is a process-local store used for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

type Store struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	emails map[string]int64
	leaves map[int64]*domain.Leave

	lastUserID  int64
	lastLeaveID int64
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[int64]*domain.User),
		emails: make(map[string]int64),
		leaves: make(map[int64]*domain.Leave),
		now:    time.Now,
	}
}

func (s *Store) Name() string                  { return "memory" }
func (s *Store) Users() ports.UserRepository   { return (*userRepo)(s) }
func (s *Store) Leaves() ports.LeaveRepository { return (*leaveRepo)(s) }
func (s *Store) Migrate(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error    { return nil }
func (s *Store) Close(context.Context) error   { return nil }

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emails[user.Email]; exists {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	r.lastUserID++
	u := *user
	u.ID = r.lastUserID
	u.CreatedAt = r.now().UTC()
	r.users[u.ID] = &u
	r.emails[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *r.users[id]
	return &out, nil
}

type leaveRepo Store

func (r *leaveRepo) Create(_ context.Context, l *domain.Leave) (*domain.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastLeaveID++
	stored := *l
	stored.ID = r.lastLeaveID
	stored.EmployeeName = ""
	r.leaves[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *leaveRepo) FindByID(_ context.Context, id int64) (*domain.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leaves[id]
	if !ok {
		return nil, domain.ErrLeaveNotFound
	}
	out := *l
	return &out, nil
}

func (r *leaveRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(l *domain.Leave) bool { return l.UserID == userID }, false), nil
}

func (r *leaveRepo) ListAll(_ context.Context) ([]*domain.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*domain.Leave) bool { return true }, true), nil
}

// collect must be called with the lock held.
func (r *leaveRepo) collect(keep func(*domain.Leave) bool, withName bool) []*domain.Leave {
	out := make([]*domain.Leave, 0)
	for _, l := range r.leaves {
		if !keep(l) {
			continue
		}
		c := *l
		if withName {
			if u, ok := r.users[c.UserID]; ok {
				c.EmployeeName = u.Name
			}
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *leaveRepo) UpdateStatus(_ context.Context, id int64, from, to domain.LeaveStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok {
		return domain.ErrLeaveNotFound
	}
	if l.Status != from {
		return domain.ErrInvalidStatusTransition
	}
	l.Status = to
	l.UpdatedAt = at
	return nil
}

func (r *leaveRepo) Delete(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok || (ownerID != 0 && l.UserID != ownerID) {
		return domain.ErrLeaveNotFound
	}
	delete(r.leaves, id)
	return nil
}
