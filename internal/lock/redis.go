package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/slauto/shopbooking/config"
)

const acquireRetryDelay = 25 * time.Millisecond

// RedisLock is a cooperative advisory lock for deployments where more than
// one process appends to the same record store file. The TTL bounds how long
// a crashed holder can wedge the lock.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLock(cfg config.RedisConfig, key string) *RedisLock {
	ttl := time.Duration(cfg.LockTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLock{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		key:    key,
		ttl:    ttl,
	}
}

func (l *RedisLock) Acquire(ctx context.Context) (func(), error) {
	for {
		ok, err := l.client.SetNX(ctx, l.key, "locked", l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				_ = l.client.Del(context.Background(), l.key).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(acquireRetryDelay):
		}
	}
}

func (l *RedisLock) Close() error {
	return l.client.Close()
}

var _ Locker = (*RedisLock)(nil)
