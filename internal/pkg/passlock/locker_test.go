package passlock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	passlockmocks "gitee.com/flycash/notification-scheduler/internal/pkg/passlock/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLocker_TryRun(t *testing.T) {
	t.Parallel()
	const (
		atMostFor  = time.Minute
		atLeastFor = 10 * time.Second
	)
	testCases := []struct {
		name     string
		mock     func(t *testing.T, ctrl *gomock.Controller) passlock.Provider
		body     func(ctx context.Context)
		wantRan  bool
		wantBody bool
	}{
		{
			name: "抢到锁，执行并释放",
			mock: func(t *testing.T, ctrl *gomock.Controller) passlock.Provider {
				p := passlockmocks.NewMockProvider(ctrl)
				l := passlockmocks.NewMockLease(ctrl)
				start := time.Now()
				p.EXPECT().TryAcquire(gomock.Any(), "remindNotifications", atMostFor).Return(l, true, nil)
				l.EXPECT().Release(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, atLeastUntil time.Time) error {
						// 释放时不受调用方 ctx 的影响
						assert.NoError(t, ctx.Err())
						assert.False(t, atLeastUntil.Before(start.Add(atLeastFor)))
						assert.False(t, atLeastUntil.After(time.Now().Add(atLeastFor)))
						return nil
					})
				return p
			},
			wantRan:  true,
			wantBody: true,
		},
		{
			name: "锁被别人持有",
			mock: func(t *testing.T, ctrl *gomock.Controller) passlock.Provider {
				p := passlockmocks.NewMockProvider(ctrl)
				p.EXPECT().TryAcquire(gomock.Any(), "remindNotifications", atMostFor).Return(nil, false, nil)
				return p
			},
		},
		{
			name: "后端出错",
			mock: func(t *testing.T, ctrl *gomock.Controller) passlock.Provider {
				p := passlockmocks.NewMockProvider(ctrl)
				p.EXPECT().TryAcquire(gomock.Any(), "remindNotifications", atMostFor).
					Return(nil, false, errors.New("mock redis error"))
				return p
			},
		},
		{
			name: "释放失败不影响结果",
			mock: func(t *testing.T, ctrl *gomock.Controller) passlock.Provider {
				p := passlockmocks.NewMockProvider(ctrl)
				l := passlockmocks.NewMockLease(ctrl)
				p.EXPECT().TryAcquire(gomock.Any(), "remindNotifications", atMostFor).Return(l, true, nil)
				l.EXPECT().Release(gomock.Any(), gomock.Any()).Return(passlock.ErrLeaseLost)
				return p
			},
			wantRan:  true,
			wantBody: true,
		},
		{
			name: "任务 panic 也会释放锁",
			mock: func(t *testing.T, ctrl *gomock.Controller) passlock.Provider {
				p := passlockmocks.NewMockProvider(ctrl)
				l := passlockmocks.NewMockLease(ctrl)
				p.EXPECT().TryAcquire(gomock.Any(), "remindNotifications", atMostFor).Return(l, true, nil)
				l.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil)
				return p
			},
			body: func(ctx context.Context) {
				panic("mock panic")
			},
			wantRan:  true,
			wantBody: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var called bool
			body := func(ctx context.Context) {
				called = true
				if tc.body != nil {
					tc.body(ctx)
				}
			}
			locker := passlock.NewLocker(tc.mock(t, ctrl))
			ran := locker.TryRun(context.Background(), "remindNotifications", atMostFor, atLeastFor, body)
			assert.Equal(t, tc.wantRan, ran)
			assert.Equal(t, tc.wantBody, called)
		})
	}
}

func TestLocker_TryRun_ClampAtLeastFor(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := passlockmocks.NewMockProvider(ctrl)
	l := passlockmocks.NewMockLease(ctrl)
	p.EXPECT().TryAcquire(gomock.Any(), "backupNotifications", time.Second).Return(l, true, nil)
	l.EXPECT().Release(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, atLeastUntil time.Time) error {
			assert.False(t, atLeastUntil.After(time.Now().Add(time.Second)))
			return nil
		})

	ran := passlock.NewLocker(p).TryRun(context.Background(), "backupNotifications",
		time.Second, time.Hour, func(ctx context.Context) {})
	assert.True(t, ran)
}

func TestLocker_TryRun_CanceledBody(t *testing.T) {
	t.Parallel()
	provider := passlock.NewMemoryProvider()
	locker := passlock.NewLocker(provider)

	ctx, cancel := context.WithCancel(context.Background())
	ran := locker.TryRun(ctx, "remindNotifications", time.Minute, 0, func(ctx context.Context) {
		cancel()
	})
	require.True(t, ran)

	// 上一次的租约已经释放
	ran = locker.TryRun(context.Background(), "remindNotifications", time.Minute, 0, func(ctx context.Context) {})
	assert.True(t, ran)
}

func TestLocker_TryRun_MutualExclusion(t *testing.T) {
	t.Parallel()
	provider := passlock.NewMemoryProvider()
	// 模拟两个节点
	nodes := []*passlock.Locker{passlock.NewLocker(provider), passlock.NewLocker(provider)}

	var (
		running  int32
		overlap  int32
		executed int32
	)
	entered := make(chan struct{}, len(nodes))
	release := make(chan struct{})
	var wg sync.WaitGroup
	for _, node := range nodes {
		wg.Add(1)
		go func(node *passlock.Locker) {
			defer wg.Done()
			// 最短持有一分钟，先执行完的节点释放之后另一个节点也抢不到
			node.TryRun(context.Background(), "backupNotifications", time.Minute, time.Minute, func(ctx context.Context) {
				if atomic.AddInt32(&running, 1) > 1 {
					atomic.StoreInt32(&overlap, 1)
				}
				atomic.AddInt32(&executed, 1)
				entered <- struct{}{}
				<-release
				atomic.AddInt32(&running, -1)
			})
		}(node)
	}

	<-entered
	// 给另一个节点足够的时间去抢锁
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&overlap))
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestLocker_TryRun_DifferentNames(t *testing.T) {
	t.Parallel()
	locker := passlock.NewLocker(passlock.NewMemoryProvider())

	var remindRan bool
	backupRan := locker.TryRun(context.Background(), "backupNotifications", time.Minute, 0, func(ctx context.Context) {
		// 持有 backup 锁的时候，remind 不受影响
		remindRan = locker.TryRun(ctx, "remindNotifications", time.Minute, 0, func(ctx context.Context) {})
	})
	assert.True(t, backupRan)
	assert.True(t, remindRan)
}
