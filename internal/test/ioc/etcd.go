package ioc

import (
	"sync"

	"github.com/ego-component/eetcd"
	"github.com/gotomicro/ego/core/econf"
)

var (
	etcdClient   *eetcd.Component
	etcdInitOnce sync.Once
)

// InitEtcdClient 本地 etcd，分布式锁的集成测试使用
func InitEtcdClient() *eetcd.Component {
	etcdInitOnce.Do(func() {
		econf.Set("etcd", map[string]any{
			"addrs":          []string{"127.0.0.1:2379"},
			"connectTimeout": "1s",
		})
		etcdClient = eetcd.Load("etcd").Build()
	})
	return etcdClient
}
