package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Hook 统计 Redis 命令、管道和建连，分布式锁的每次抢占和释放都会经过这里
type Hook struct {
	commandCounter  *prometheus.CounterVec
	commandDuration *prometheus.SummaryVec
	pipelineCounter *prometheus.CounterVec
	dialCounter     *prometheus.CounterVec
}

func NewHook(registerer prometheus.Registerer) *Hook {
	h := &Hook{
		commandCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redis_commands_total",
			Help: "Redis 命令执行次数",
		}, []string{"command", "status"}),
		commandDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "redis_command_duration_seconds",
			Help:       "Redis 命令耗时（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"command"}),
		pipelineCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redis_pipeline_total",
			Help: "Redis 管道执行次数",
		}, []string{"status"}),
		dialCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redis_dial_total",
			Help: "Redis 建立连接次数",
		}, []string{"status"}),
	}
	registerer.MustRegister(h.commandCounter, h.commandDuration, h.pipelineCounter, h.dialCounter)
	return h
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.commandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())
		h.commandCounter.WithLabelValues(cmd.Name(), status(err)).Inc()
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		st := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == statusError {
				st = statusError
				break
			}
		}
		h.pipelineCounter.WithLabelValues(st).Inc()
		return err
	}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.dialCounter.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

// redis.Nil 是正常的“不存在”，不算失败
func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusSuccess
}
