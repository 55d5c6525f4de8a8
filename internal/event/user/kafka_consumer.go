package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/pkg/mqx"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"
)

const defaultPollTimeout = time.Second

// KafkaRegisteredEventConsumer 从 kafka 消费用户注册事件，处理成功之后才提交消费进度
type KafkaRegisteredEventConsumer struct {
	*registeredHandler
	consumer    mqx.Consumer
	pollTimeout time.Duration
}

func NewKafkaRegisteredEventConsumer(svc recipient.Service, consumer *kafka.Consumer) (*KafkaRegisteredEventConsumer, error) {
	err := consumer.SubscribeTopics([]string{RegisteredTopic}, nil)
	if err != nil {
		return nil, err
	}
	return newKafkaRegisteredEventConsumer(svc, consumer), nil
}

func newKafkaRegisteredEventConsumer(svc recipient.Service, consumer mqx.Consumer) *KafkaRegisteredEventConsumer {
	return &KafkaRegisteredEventConsumer{
		registeredHandler: newRegisteredHandler(svc),
		consumer:          consumer,
		pollTimeout:       defaultPollTimeout,
	}
}

func (c *KafkaRegisteredEventConsumer) Start(ctx context.Context) {
	go func() {
		defer func() {
			if err := c.consumer.Close(); err != nil {
				c.logger.Warn("关闭 kafka 消费者失败", elog.FieldErr(err))
			}
		}()
		for ctx.Err() == nil {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费用户注册事件失败", elog.FieldErr(er))
			}
		}
	}()
}

// Consume 最多等待 pollTimeout，没有消息的时候直接返回
func (c *KafkaRegisteredEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.ReadMessage(c.pollTimeout)
	if err != nil {
		var kErr kafka.Error
		if errors.As(err, &kErr) && kErr.Code() == kafka.ErrTimedOut {
			return nil
		}
		return fmt.Errorf("获取消息失败: %w", err)
	}

	err = c.handle(ctx, msg.Value)
	if err != nil {
		// 不提交，重启或者再均衡之后会重新消费
		return err
	}
	if _, err = c.consumer.CommitMessage(msg); err != nil {
		c.logger.Warn("提交消息失败",
			elog.FieldErr(err),
			elog.Any("partition", msg.TopicPartition.Partition),
			elog.Any("offset", msg.TopicPartition.Offset))
		return err
	}
	return nil
}
