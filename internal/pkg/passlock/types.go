package passlock

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=./types.go -destination=./mocks/passlock.mock.go -package=passlockmocks Provider,Lease

// ErrLeaseLost 释放的时候发现锁已经不属于自己，一般是执行时间超过了 atMostFor
var ErrLeaseLost = errors.New("passlock: 锁已经不属于当前持有者")

// Provider 具名租约的存储后端。
// 同一时刻同一个名字最多只有一个有效租约
type Provider interface {
	// TryAcquire 尝试获得 name 的租约，最长持有 atMostFor。
	// 别人持有的时候返回 (nil, false, nil)，后端出错时返回 error
	TryAcquire(ctx context.Context, name string, atMostFor time.Duration) (Lease, bool, error)
}

// Lease 一次成功获取的租约
type Lease interface {
	// Release 释放租约。atLeastUntil 还没到的话，租约会保留到 atLeastUntil 再失效
	Release(ctx context.Context, atLeastUntil time.Time) error
}
