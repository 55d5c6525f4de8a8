package ioc

import (
	"fmt"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"gitee.com/flycash/notification-scheduler/internal/service/scheduler"
	"github.com/gotomicro/ego/core/econf"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerConfig 对应配置里的 scheduler
type SchedulerConfig struct {
	Concurrency int `yaml:"concurrency"`
	BatchSize   int `yaml:"batchSize"`
}

func (c SchedulerConfig) Validate() error {
	var err error
	if c.Concurrency < 0 {
		err = multierror.Append(err, fmt.Errorf("scheduler.concurrency 不能小于 0"))
	}
	if c.BatchSize < 0 {
		err = multierror.Append(err, fmt.Errorf("scheduler.batchSize 不能小于 0"))
	}
	return err
}

func InitSchedulerConfig() SchedulerConfig {
	var cfg SchedulerConfig
	if err := econf.UnmarshalKey("scheduler", &cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func InitDispatcher(cfg SchedulerConfig, pipeline *scheduler.Pipeline) *scheduler.Dispatcher {
	return scheduler.NewDispatcher(pipeline, cfg.Concurrency)
}

func InitSchedulerMetrics() *scheduler.Metrics {
	return scheduler.NewMetrics(prometheus.DefaultRegisterer)
}

// InitPasses 每种通知类型一轮调度
func InitPasses(svc recipient.Service,
	dispatcher *scheduler.Dispatcher,
	locker *passlock.Locker,
	lockCfg scheduler.LockConfig,
	metrics *scheduler.Metrics,
) []*scheduler.Pass {
	types := domain.NotificationTypes()
	passes := make([]*scheduler.Pass, 0, len(types))
	for _, typ := range types {
		passes = append(passes, scheduler.NewPass(typ, svc, dispatcher, locker, lockCfg, metrics))
	}
	return passes
}
