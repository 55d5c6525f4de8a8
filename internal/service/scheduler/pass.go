package scheduler

import (
	"context"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
)

// LockConfig 调度分布式锁的持有时间
type LockConfig struct {
	AtMostFor  time.Duration `yaml:"atMostFor"`
	AtLeastFor time.Duration `yaml:"atLeastFor"`
}

// Metrics 所有通知类型共用一份，按 type 标签区分
type Metrics struct {
	passCounter      *prometheus.CounterVec
	recipientCounter *prometheus.CounterVec
	passDuration     *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		passCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_pass_total",
			Help: "调度轮次，result 为 ran 或者 skipped",
		}, []string{"type", "result"}),
		recipientCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_pass_recipients_total",
			Help: "每轮调度处理的接收者",
		}, []string{"type", "outcome"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notification_pass_duration_seconds",
			Help:    "每轮调度的耗时（秒）",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"type"}),
	}
	registerer.MustRegister(m.passCounter, m.recipientCounter, m.passDuration)
	return m
}

func (m *Metrics) observe(typ domain.NotificationType, res PassResult, duration time.Duration) {
	t := typ.String()
	m.passCounter.WithLabelValues(t, "ran").Inc()
	m.passDuration.WithLabelValues(t).Observe(duration.Seconds())
	m.recipientCounter.WithLabelValues(t, "succeeded").Add(float64(res.Succeeded))
	m.recipientCounter.WithLabelValues(t, "failed").Add(float64(res.Failed))
	m.recipientCounter.WithLabelValues(t, "skipped").Add(float64(res.Skipped))
	m.recipientCounter.WithLabelValues(t, "invariant").Add(float64(res.Invariant))
}

func (m *Metrics) skipped(typ domain.NotificationType) {
	m.passCounter.WithLabelValues(typ.String(), "skipped").Inc()
}

// Pass 某个通知类型的一轮调度，由定时任务触发。
// 集群里所有节点都会触发，只有抢到该类型分布式锁的节点真正执行
type Pass struct {
	typ        domain.NotificationType
	recipients recipient.Service
	dispatcher *Dispatcher
	locker     *passlock.Locker
	lockCfg    LockConfig
	metrics    *Metrics
	now        func() time.Time
	logger     *elog.Component
}

func NewPass(typ domain.NotificationType,
	recipients recipient.Service,
	dispatcher *Dispatcher,
	locker *passlock.Locker,
	lockCfg LockConfig,
	metrics *Metrics,
) *Pass {
	return &Pass{
		typ:        typ,
		recipients: recipients,
		dispatcher: dispatcher,
		locker:     locker,
		lockCfg:    lockCfg,
		metrics:    metrics,
		now:        time.Now,
		logger:     elog.DefaultLogger.With(elog.String("type", typ.String())),
	}
}

func (p *Pass) Type() domain.NotificationType {
	return p.typ
}

// Do 作为 ecron 的 job，永远不返回错误，失败都体现在日志和监控里
func (p *Pass) Do(ctx context.Context) error {
	ran := p.locker.TryRun(ctx, p.typ.LockName(), p.lockCfg.AtMostFor, p.lockCfg.AtLeastFor, p.run)
	if !ran {
		p.metrics.skipped(p.typ)
	}
	return nil
}

func (p *Pass) run(ctx context.Context) {
	begin := time.Now()
	now := p.now()
	today := domain.Date(now)
	p.logger.Info("开始调度", elog.String("asOf", today.Format(time.DateOnly)))

	res := p.dispatcher.Dispatch(ctx, p.typ, p.recipients.ReadyToNotify(ctx, p.typ, today), now)

	duration := time.Since(begin)
	p.metrics.observe(p.typ, res, duration)
	p.logger.Info("调度结束",
		elog.Int64("total", res.Total),
		elog.Int64("succeeded", res.Succeeded),
		elog.Int64("failed", res.Failed),
		elog.Int64("skipped", res.Skipped),
		elog.Int64("invariant", res.Invariant),
		elog.String("duration", duration.String()))
}
