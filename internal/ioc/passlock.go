package ioc

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	"gitee.com/flycash/notification-scheduler/internal/service/scheduler"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/hashicorp/go-multierror"
	dlockRedis "github.com/meoying/dlock-go/redis"
)

const (
	providerMemory = "memory"
	providerRedis  = "redis"
	providerDlock  = "dlock"
	providerDB     = "db"
	providerEtcd   = "etcd"
)

// PassLockConfig 对应配置里的 passlock
type PassLockConfig struct {
	Provider   string        `yaml:"provider"`
	AtMostFor  time.Duration `yaml:"atMostFor"`
	AtLeastFor time.Duration `yaml:"atLeastFor"`
}

func (c PassLockConfig) Validate() error {
	var err error
	switch c.Provider {
	case providerMemory, providerRedis, providerDlock, providerDB, providerEtcd:
	default:
		err = multierror.Append(err, fmt.Errorf("passlock.provider 不支持 %q", c.Provider))
	}
	if c.AtMostFor <= 0 {
		err = multierror.Append(err, fmt.Errorf("passlock.atMostFor 必须大于 0"))
	}
	if c.AtLeastFor < 0 {
		err = multierror.Append(err, fmt.Errorf("passlock.atLeastFor 不能小于 0"))
	}
	if c.AtLeastFor > c.AtMostFor {
		err = multierror.Append(err, fmt.Errorf("passlock.atLeastFor 不能超过 atMostFor"))
	}
	return err
}

func InitPassLockConfig() PassLockConfig {
	cfg := PassLockConfig{
		Provider:   providerDB,
		AtMostFor:  10 * time.Minute,
		AtLeastFor: 30 * time.Second,
	}
	if err := econf.UnmarshalKey("passlock", &cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func InitLockConfig(cfg PassLockConfig) scheduler.LockConfig {
	return scheduler.LockConfig{
		AtMostFor:  cfg.AtMostFor,
		AtLeastFor: cfg.AtLeastFor,
	}
}

// InitPassLockProvider Redis 和 etcd 只有被选中时才会连接
func InitPassLockProvider(cfg PassLockConfig, db *egorm.Component) passlock.Provider {
	switch cfg.Provider {
	case providerMemory:
		return passlock.NewMemoryProvider()
	case providerRedis:
		return passlock.NewRedisProvider(InitRedisClient())
	case providerDlock:
		return passlock.NewDlockProvider(dlockRedis.NewClient(InitRedisClient()))
	case providerEtcd:
		return passlock.NewEtcdProvider(InitEtcdClient().Client)
	default:
		return passlock.NewDBProvider(db)
	}
}
