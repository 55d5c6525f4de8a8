package ioc

import (
	"context"

	"gitee.com/flycash/notification-scheduler/internal/event/user"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
)

// Task 随应用启动的后台任务
type Task interface {
	Start(ctx context.Context)
}

func InitTasks(registered Task) []Task {
	return []Task{
		registered,
	}
}

// InitRegisteredEventConsumer 按 mq.type 选择消息队列
func InitRegisteredEventConsumer(svc recipient.Service, cfg MQConfig) Task {
	var (
		c   Task
		err error
	)
	switch cfg.Type {
	case mqTypeKafka:
		c, err = user.NewKafkaRegisteredEventConsumer(svc, InitKafkaConsumer(cfg.Kafka))
	default:
		c, err = user.NewRegisteredEventConsumer(svc, InitMemoryMQ(cfg))
	}
	if err != nil {
		panic(err)
	}
	return c
}
