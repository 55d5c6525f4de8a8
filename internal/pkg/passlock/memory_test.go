package passlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestMemoryProvider(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)}
	p := NewMemoryProvider()
	p.now = clock.Now
	ctx := context.Background()

	lease, ok, err := p.TryAcquire(ctx, "backupNotifications", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = p.TryAcquire(ctx, "backupNotifications", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// 不同的名字互不影响
	_, ok, err = p.TryAcquire(ctx, "remindNotifications", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// 最短持有到 10 秒之后
	require.NoError(t, lease.Release(ctx, clock.Now().Add(10*time.Second)))
	clock.Advance(5 * time.Second)
	_, ok, _ = p.TryAcquire(ctx, "backupNotifications", time.Minute)
	assert.False(t, ok)

	clock.Advance(5 * time.Second)
	_, ok, _ = p.TryAcquire(ctx, "backupNotifications", time.Minute)
	assert.True(t, ok)
}

func TestMemoryProvider_Expired(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)}
	p := NewMemoryProvider()
	p.now = clock.Now
	ctx := context.Background()

	stale, ok, err := p.TryAcquire(ctx, "backupNotifications", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// 超过 atMostFor 之后别人可以抢到
	clock.Advance(time.Minute)
	lease, ok, err := p.TryAcquire(ctx, "backupNotifications", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// 过期的租约释放不会影响新的持有者
	assert.ErrorIs(t, stale.Release(ctx, clock.Now()), ErrLeaseLost)
	_, ok, _ = p.TryAcquire(ctx, "backupNotifications", time.Minute)
	assert.False(t, ok)

	require.NoError(t, lease.Release(ctx, clock.Now()))
	_, ok, _ = p.TryAcquire(ctx, "backupNotifications", time.Minute)
	assert.True(t, ok)
}
