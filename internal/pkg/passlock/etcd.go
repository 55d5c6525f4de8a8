package passlock

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gofrs/uuid"
	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const etcdKeyPrefix = "/notification-scheduler/passlock/"

// EtcdProvider 基于 etcd 租约的实现。
// key 绑定在一个 atMostFor 的租约上，只有 key 不存在的时候才能创建成功
type EtcdProvider struct {
	client *clientv3.Client
}

func NewEtcdProvider(client *clientv3.Client) *EtcdProvider {
	return &EtcdProvider{client: client}
}

func (p *EtcdProvider) TryAcquire(ctx context.Context, name string, atMostFor time.Duration) (Lease, bool, error) {
	owner, err := uuid.NewV4()
	if err != nil {
		return nil, false, err
	}
	grant, err := p.client.Grant(ctx, ttlSeconds(atMostFor))
	if err != nil {
		return nil, false, err
	}
	key := etcdKeyPrefix + name
	resp, err := p.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, owner.String(), clientv3.WithLease(grant.ID))).
		Commit()
	if err != nil || !resp.Succeeded {
		// 没有用上的租约要还回去
		_, _ = p.client.Revoke(ctx, grant.ID)
		return nil, false, err
	}
	return &etcdLease{client: p.client, key: key, owner: owner.String(), id: grant.ID}, true, nil
}

type etcdLease struct {
	client *clientv3.Client
	key    string
	owner  string
	id     clientv3.LeaseID
}

func (l *etcdLease) Release(ctx context.Context, atLeastUntil time.Time) error {
	remaining := time.Until(atLeastUntil)
	if remaining <= 0 {
		// 撤销租约会一并删除 key
		_, err := l.client.Revoke(ctx, l.id)
		return leaseError(err)
	}
	// 把 key 挪到一个只剩下最短持有时间的新租约上
	grant, err := l.client.Grant(ctx, ttlSeconds(remaining))
	if err != nil {
		return err
	}
	resp, err := l.client.Txn(ctx).
		If(clientv3.Compare(clientv3.Value(l.key), "=", l.owner)).
		Then(clientv3.OpPut(l.key, l.owner, clientv3.WithLease(grant.ID))).
		Commit()
	if err != nil {
		return err
	}
	if !resp.Succeeded {
		_, _ = l.client.Revoke(ctx, grant.ID)
		return ErrLeaseLost
	}
	_, err = l.client.Revoke(ctx, l.id)
	return leaseError(err)
}

// leaseError 租约已经过期的时候 etcd 返回 lease not found
func leaseError(err error) error {
	if errors.Is(err, rpctypes.ErrLeaseNotFound) {
		return ErrLeaseLost
	}
	return err
}

// ttlSeconds etcd 的租约以秒为单位，向上取整
func ttlSeconds(d time.Duration) int64 {
	return max(int64(math.Ceil(d.Seconds())), 1)
}
