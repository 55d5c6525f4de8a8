package ioc

import (
	"sync"

	redismetrics "gitee.com/flycash/notification-scheduler/internal/pkg/redis/metrics"
	"github.com/gotomicro/ego/core/econf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient   *redis.Client
	redisInitOnce sync.Once
)

// InitRedisClient 只有分布式锁用到 Redis，按需初始化
func InitRedisClient() *redis.Client {
	redisInitOnce.Do(func() {
		type Config struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		}
		var cfg Config
		err := econf.UnmarshalKey("redis", &cfg)
		if err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		redisClient.AddHook(redismetrics.NewHook(prometheus.DefaultRegisterer))
	})
	return redisClient
}
