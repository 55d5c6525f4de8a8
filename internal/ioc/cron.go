package ioc

import (
	"strings"

	"gitee.com/flycash/notification-scheduler/internal/service/scheduler"
	"github.com/gotomicro/ego/task/ecron"
)

// Crons 配置 cron.backup 和 cron.remind 分别控制两种通知的调度周期
func Crons(passes []*scheduler.Pass) []ecron.Ecron {
	crons := make([]ecron.Ecron, 0, len(passes))
	for _, p := range passes {
		key := "cron." + strings.ToLower(p.Type().String())
		crons = append(crons, ecron.Load(key).Build(ecron.WithJob(p.Do)))
	}
	return crons
}
