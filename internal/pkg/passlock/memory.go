package passlock

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

// MemoryProvider 进程内的实现，只适合单节点部署和测试
type MemoryProvider struct {
	mu    sync.Mutex
	locks map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	owner string
	until time.Time
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		locks: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (p *MemoryProvider) TryAcquire(_ context.Context, name string, atMostFor time.Duration) (Lease, bool, error) {
	owner, err := uuid.NewV4()
	if err != nil {
		return nil, false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if e, ok := p.locks[name]; ok && now.Before(e.until) {
		return nil, false, nil
	}
	p.locks[name] = memoryEntry{owner: owner.String(), until: now.Add(atMostFor)}
	return &memoryLease{p: p, name: name, owner: owner.String()}, true, nil
}

type memoryLease struct {
	p     *MemoryProvider
	name  string
	owner string
}

func (l *memoryLease) Release(_ context.Context, atLeastUntil time.Time) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	e, ok := l.p.locks[l.name]
	if !ok || e.owner != l.owner {
		return ErrLeaseLost
	}
	if atLeastUntil.After(l.p.now()) {
		e.until = atLeastUntil
		l.p.locks[l.name] = e
		return nil
	}
	delete(l.p.locks, l.name)
	return nil
}
