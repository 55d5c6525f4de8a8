//go:build wireinject

package ioc

import (
	"gitee.com/flycash/notification-scheduler/internal/ioc"
	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	"gitee.com/flycash/notification-scheduler/internal/repository/dao"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"gitee.com/flycash/notification-scheduler/internal/service/scheduler"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitMQConfig,
		ioc.InitIDGenerator,
	)
	recipientSvcSet = wire.NewSet(
		recipient.NewService,
		ioc.InitRecipientRepository,
		dao.NewRecipientDAO,
	)
	passLockSet = wire.NewSet(
		ioc.InitPassLockConfig,
		ioc.InitLockConfig,
		ioc.InitPassLockProvider,
		passlock.NewLocker,
	)
	schedulerSet = wire.NewSet(
		ioc.InitSchedulerConfig,
		ioc.InitAccountClient,
		ioc.InitSender,
		ioc.InitSchedulerMetrics,
		scheduler.NewPipeline,
		ioc.InitDispatcher,
		ioc.InitPasses,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// 接收者服务
		recipientSvcSet,

		// 分布式锁
		passLockSet,

		// 调度
		schedulerSet,
		ioc.Crons,

		// 用户注册事件
		ioc.InitRegisteredEventConsumer,
		ioc.InitTasks,

		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
