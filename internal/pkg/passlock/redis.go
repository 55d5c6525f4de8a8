package passlock

import (
	"context"
	_ "embed"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "passlock:"

//go:embed lua/release.lua
var luaRelease string

// RedisProvider 基于 SET NX PX 的实现，释放的时候用 lua 脚本比对持有者
type RedisProvider struct {
	client redis.Cmdable
}

func NewRedisProvider(client redis.Cmdable) *RedisProvider {
	return &RedisProvider{client: client}
}

func (p *RedisProvider) TryAcquire(ctx context.Context, name string, atMostFor time.Duration) (Lease, bool, error) {
	owner, err := uuid.NewV4()
	if err != nil {
		return nil, false, err
	}
	key := redisKeyPrefix + name
	ok, err := p.client.SetNX(ctx, key, owner.String(), atMostFor).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return &redisLease{client: p.client, key: key, owner: owner.String()}, true, nil
}

type redisLease struct {
	client redis.Cmdable
	key    string
	owner  string
}

func (l *redisLease) Release(ctx context.Context, atLeastUntil time.Time) error {
	// 剩余的最短持有时间，小于等于 0 就直接删除
	remaining := time.Until(atLeastUntil).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	res, err := l.client.Eval(ctx, luaRelease, []string{l.key}, l.owner, remaining).Int64()
	if err != nil {
		return err
	}
	if res != 1 {
		return ErrLeaseLost
	}
	return nil
}
