package memstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *userRepo) AppendBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.appendBookingLocked(userID, bookingID)
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user %s: %w", user.ID, repository.ErrNotFound)
	}
	u.Name = user.Name
	u.PasswordHash = user.PasswordHash
	u.UpdatedAt = user.UpdatedAt
	return nil
}

func (s *Store) appendBookingLocked(userID, bookingID uuid.UUID) error {
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("append booking to user %s: %w", userID, repository.ErrNotFound)
	}
	for _, id := range u.BookingIDs {
		if id == bookingID {
			return nil
		}
	}
	u.BookingIDs = append(u.BookingIDs, bookingID)
	u.UpdatedAt = time.Now()
	return nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[session.Token] = cloneSession(session)
	return nil
}

func (r *sessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.sessions[tokenID]
	if !ok || !sess.Active(time.Now()) {
		return nil, nil
	}
	return cloneSession(sess), nil
}

func (r *sessionRepo) Revoke(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("revoke session: %w", repository.ErrNotFound)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[tokenID]
	if !ok || sess.RevokedAt != nil {
		return fmt.Errorf("revoke session: %w", repository.ErrNotFound)
	}
	sess.Revoke(time.Now())
	return nil
}
