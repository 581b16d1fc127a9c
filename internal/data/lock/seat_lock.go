// Package lock provides short-lived seat locks held while a booking is
// being committed.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "seat_lock:"

// SeatLocker claims a set of seats for one owner. Lock is all-or-nothing:
// when any seat is already held, nothing stays locked and false is returned.
type SeatLocker interface {
	Lock(ctx context.Context, owner string, seatIDs []uuid.UUID) (bool, error)
	Unlock(ctx context.Context, owner string, seatIDs []uuid.UUID) error
}

// unlockScript deletes the key only if it still belongs to the owner.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSeatLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSeatLocker(client *redis.Client, ttl time.Duration, log *zap.Logger) SeatLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisSeatLocker{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "seat_lock")),
	}
}

func seatKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (l *redisSeatLocker) Lock(ctx context.Context, owner string, seatIDs []uuid.UUID) (bool, error) {
	locked := make([]uuid.UUID, 0, len(seatIDs))

	for _, id := range seatIDs {
		ok, err := l.client.SetNX(ctx, seatKey(id), owner, l.ttl).Result()
		if err != nil || !ok {
			l.release(owner, locked)
			if err != nil {
				return false, fmt.Errorf("lock seat %s: %w", id, err)
			}
			l.log.Debug("Seat already locked",
				zap.String("seat_id", id.String()),
				zap.String("owner", owner),
			)
			return false, nil
		}
		locked = append(locked, id)
	}

	return true, nil
}

func (l *redisSeatLocker) Unlock(ctx context.Context, owner string, seatIDs []uuid.UUID) error {
	var errs []error
	for _, id := range seatIDs {
		if err := unlockScript.Run(ctx, l.client, []string{seatKey(id)}, owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
			errs = append(errs, fmt.Errorf("unlock seat %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// release undoes a partial Lock. It runs on its own context so a cancelled
// request still frees what it claimed.
func (l *redisSeatLocker) release(owner string, seatIDs []uuid.UUID) {
	if len(seatIDs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.Unlock(ctx, owner, seatIDs); err != nil {
		l.log.Warn("Failed to release partial seat lock", zap.Error(err), zap.String("owner", owner))
	}
}

type noopSeatLocker struct{}

// NewNoopSeatLocker always grants the lock. Used when Redis is not configured.
func NewNoopSeatLocker() SeatLocker {
	return noopSeatLocker{}
}

func (noopSeatLocker) Lock(context.Context, string, []uuid.UUID) (bool, error) { return true, nil }

func (noopSeatLocker) Unlock(context.Context, string, []uuid.UUID) error { return nil }
