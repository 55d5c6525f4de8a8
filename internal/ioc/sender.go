package ioc

import (
	"gitee.com/flycash/notification-scheduler/internal/service/sender"
	"gitee.com/flycash/notification-scheduler/internal/service/sender/email"
	"gitee.com/flycash/notification-scheduler/internal/service/sender/metrics"
	"gitee.com/flycash/notification-scheduler/internal/service/sender/tracing"
	"github.com/gotomicro/ego/core/econf"
	"github.com/prometheus/client_golang/prometheus"
)

// InitSender 邮件发送，外层依次是链路追踪和指标
func InitSender() sender.Sender {
	var cfg email.Config
	if err := econf.UnmarshalKey("email", &cfg); err != nil {
		panic(err)
	}
	s := email.NewSender(cfg)
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return metrics.NewSender(tracing.NewSender(s), prometheus.DefaultRegisterer)
}
