package locks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrAlreadyLocked means another submission for the same session is in
// flight.
var ErrAlreadyLocked = errors.New("session lock already held")

// SessionLocks serializes answer submissions per session. One redis SETNX
// key per session with a TTL covering the longest possible evaluation call,
// so a crashed holder cannot wedge the session forever.
type SessionLocks struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionLocks(rdb *redis.Client, ttl time.Duration) *SessionLocks {
	return &SessionLocks{rdb: rdb, ttl: ttl}
}

// Acquire takes the lock for a session, returning a release func. Release is
// value-checked: it only deletes the key if this caller still holds it, so a
// slow holder cannot release a lock re-acquired by someone else after TTL
// expiry.
func (l *SessionLocks) Acquire(ctx context.Context, sessionID string) (func(), error) {
	key := lockKey(sessionID)
	token := uuid.New().String()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyLocked
	}

	release := func() {
		// best effort; the TTL is the backstop
		l.rdb.Eval(context.Background(), releaseScript, []string{key}, token)
	}
	return release, nil
}

// delete only if we still own the key
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

func lockKey(sessionID string) string {
	return "session:lock:" + sessionID
}
