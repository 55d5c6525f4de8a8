package user

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// RegisteredEventConsumer 用户注册后为其创建默认的通知接收者
type RegisteredEventConsumer struct {
	*registeredHandler
	consumer mq.Consumer
}

func NewRegisteredEventConsumer(svc recipient.Service, q mq.MQ) (*RegisteredEventConsumer, error) {
	consumer, err := q.Consumer(RegisteredTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &RegisteredEventConsumer{
		registeredHandler: newRegisteredHandler(svc),
		consumer:          consumer,
	}, nil
}

func (c *RegisteredEventConsumer) Start(ctx context.Context) {
	go func() {
		for ctx.Err() == nil {
			er := c.Consume(ctx)
			if er != nil && ctx.Err() == nil {
				c.logger.Error("消费用户注册事件失败", elog.FieldErr(er))
			}
		}
	}()
}

// Consume 消费一条消息
func (c *RegisteredEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	return c.handle(ctx, msg.Value)
}
