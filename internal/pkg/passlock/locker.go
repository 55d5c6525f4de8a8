package passlock

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
)

const defaultTimeout = time.Second * 3

// Locker 保证同一个名字的任务在整个集群里同一时刻最多只有一个在执行
type Locker struct {
	provider Provider
	logger   *elog.Component
	now      func() time.Time
}

func NewLocker(provider Provider) *Locker {
	return &Locker{
		provider: provider,
		logger:   elog.DefaultLogger,
		now:      time.Now,
	}
}

// TryRun 抢到 name 的租约才执行 body，返回 body 是否被执行。
// 锁被别人持有或者后端出错都不会执行 body。
// 租约最长持有 atMostFor，至少持有 atLeastFor，atLeastFor 超过 atMostFor 时按 atMostFor 处理
func (l *Locker) TryRun(ctx context.Context, name string,
	atMostFor, atLeastFor time.Duration,
	body func(ctx context.Context)) (ran bool) {
	if atLeastFor > atMostFor {
		atLeastFor = atMostFor
	}
	logger := l.logger.With(elog.String("lock", name))

	lockCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	lease, ok, err := l.provider.TryAcquire(lockCtx, name, atMostFor)
	cancel()
	if err != nil {
		logger.Warn("获取分布式锁失败，跳过本次执行", elog.FieldErr(err))
		return false
	}
	if !ok {
		logger.Debug("分布式锁被其它节点持有，跳过本次执行")
		return false
	}
	acquiredAt := l.now()

	defer func() {
		// 要稍微摆脱 ctx 的控制，因为此时 ctx 可能被取消了
		unCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		//nolint:contextcheck // 这里必须使用 Background Context，因为原始 ctx 可能已被取消，但仍需尝试解锁操作。
		unErr := lease.Release(unCtx, acquiredAt.Add(atLeastFor))
		cancel()
		if unErr != nil {
			logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
		}
	}()

	ran = true
	defer func() {
		if r := recover(); r != nil {
			logger.Error("任务执行出现 panic", elog.Any("panic", r))
		}
	}()
	body(ctx)
	return ran
}
