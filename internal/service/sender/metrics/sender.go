// Package metrics 为通知发送添加指标收集的装饰器
package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/service/sender"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// Sender 为发送实现添加指标收集的装饰器
type Sender struct {
	sender              sender.Sender
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
}

// NewSender 指标注册到 registerer 上，生产环境传 prometheus.DefaultRegisterer
func NewSender(s sender.Sender, registerer prometheus.Registerer) *Sender {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "notification_send_duration_seconds",
			Help:       "通知发送耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"type", "status"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_send_total",
			Help: "通知发送总数",
		},
		[]string{"type", "status"},
	)

	// 注册指标
	registerer.MustRegister(sendDurationSummary, sendCounter)

	return &Sender{
		sender:              s,
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
	}
}

func (s *Sender) Send(ctx context.Context, typ domain.NotificationType, recipient domain.Recipient, attachment []byte) error {
	startTime := time.Now()
	err := s.sender.Send(ctx, typ, recipient, attachment)
	duration := time.Since(startTime).Seconds()

	status := statusSuccess
	if err != nil {
		status = statusFailed
	}
	s.sendCounter.WithLabelValues(typ.String(), status).Inc()
	s.sendDurationSummary.WithLabelValues(typ.String(), status).Observe(duration)
	return err
}
