package scheduler

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/errs"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 16

// PassResult 一轮调度的统计，只用于日志和监控
type PassResult struct {
	Total     int64
	Succeeded int64
	Failed    int64
	// Skipped 接收者已经没有该类型的设置
	Skipped int64
	// Invariant 标记了未激活的设置
	Invariant int64
}

type passCounter struct {
	total     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
	invariant atomic.Int64
}

func (c *passCounter) result() PassResult {
	return PassResult{
		Total:     c.total.Load(),
		Succeeded: c.succeeded.Load(),
		Failed:    c.failed.Load(),
		Skipped:   c.skipped.Load(),
		Invariant: c.invariant.Load(),
	}
}

// Dispatcher 把就绪的接收者分发给各自独立的投递流程
type Dispatcher struct {
	pipeline    *Pipeline
	concurrency int
	logger      *elog.Component
}

// NewDispatcher concurrency 是一轮调度里同时执行的投递流程上限，小于等于 0 时使用默认值
func NewDispatcher(pipeline *Pipeline, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Dispatcher{
		pipeline:    pipeline,
		concurrency: concurrency,
		logger:      elog.DefaultLogger,
	}
}

// Dispatch 每个接收者一个投递流程，等所有流程结束后返回。
// 单个流程的失败只记录日志，不影响其它流程；读取接收者出错时不再启动新的流程
func (d *Dispatcher) Dispatch(ctx context.Context, typ domain.NotificationType,
	recipients iter.Seq2[domain.Recipient, error], now time.Time,
) PassResult {
	var (
		eg      errgroup.Group
		counter passCounter
	)
	eg.SetLimit(d.concurrency)

	for r, err := range recipients {
		if err != nil {
			d.logger.Error("读取待通知的接收者失败，停止分发",
				elog.String("type", typ.String()),
				elog.FieldErr(err))
			break
		}
		counter.total.Add(1)
		eg.Go(func() error {
			d.deliver(ctx, typ, r, now, &counter)
			// 不返回错误，避免影响其它接收者
			return nil
		})
	}
	_ = eg.Wait()
	return counter.result()
}

func (d *Dispatcher) deliver(ctx context.Context, typ domain.NotificationType, r domain.Recipient,
	now time.Time, counter *passCounter,
) {
	logger := d.logger.With(
		elog.String("username", r.Username()),
		elog.String("type", typ.String()))

	var err error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("投递流程 panic: %v", p)
		}
		switch {
		case err == nil:
			counter.succeeded.Add(1)
		case errs.IsSkip(err):
			counter.skipped.Add(1)
			logger.Info("接收者没有该类型的通知设置，跳过", elog.FieldErr(err))
		case errs.IsInvariantViolation(err):
			counter.invariant.Add(1)
			logger.Error("通知设置状态异常", elog.FieldErr(err))
		default:
			counter.failed.Add(1)
			logger.Warn("通知投递失败，等待下一轮调度", elog.FieldErr(err))
		}
	}()
	err = d.pipeline.Deliver(ctx, typ, r, now)
}
