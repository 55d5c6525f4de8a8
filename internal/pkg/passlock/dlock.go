package passlock

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// DlockProvider 基于 dlock-go 的实现。
// dlock 的 Unlock 会立刻释放，所以最短持有时间通过延迟 Unlock 来保证
type DlockProvider struct {
	client dlock.Client
	logger *elog.Component
}

func NewDlockProvider(client dlock.Client) *DlockProvider {
	return &DlockProvider{
		client: client,
		logger: elog.DefaultLogger,
	}
}

func (p *DlockProvider) TryAcquire(ctx context.Context, name string, atMostFor time.Duration) (Lease, bool, error) {
	lock, err := p.client.NewLock(ctx, name, atMostFor)
	if err != nil {
		return nil, false, err
	}
	// 没有拿到锁，不管是系统错误，还是锁被人持有，都没有关系，等下一次调度
	if err = lock.Lock(ctx); err != nil {
		p.logger.Info("没有抢到分布式锁", elog.String("lock", name), elog.FieldErr(err))
		return nil, false, nil
	}
	return &dlockLease{lock: lock, logger: p.logger.With(elog.String("lock", name))}, true, nil
}

type dlockLease struct {
	lock   dlock.Lock
	logger *elog.Component
}

func (l *dlockLease) Release(ctx context.Context, atLeastUntil time.Time) error {
	remaining := time.Until(atLeastUntil)
	if remaining <= 0 {
		return l.lock.Unlock(ctx)
	}
	time.AfterFunc(remaining, func() {
		unCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := l.lock.Unlock(unCtx); err != nil {
			// 锁本身带有过期时间，释放失败也会在 atMostFor 之后自动失效
			l.logger.Warn("延迟释放分布式锁失败", elog.FieldErr(err))
		}
	})
	return nil
}
