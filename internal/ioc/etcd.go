package ioc

import (
	"github.com/ego-component/eetcd"
)

// InitEtcdClient 使用 etcd 作为分布式锁后端时才会初始化
func InitEtcdClient() *eetcd.Component {
	return eetcd.Load("etcd").Build()
}
