package ioc

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/redis/go-redis/v9"
)

func InitRedis() redis.Cmdable {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	const maxInterval = 10 * time.Second
	const maxRetries = 10
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}
	const timeout = 3 * time.Second
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return client
		}
		next, ok := strategy.Next()
		if !ok {
			panic("InitRedis 重试失败......")
		}
		time.Sleep(next)
	}
}
