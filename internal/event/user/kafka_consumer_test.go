package user

import (
	"context"
	"errors"
	"testing"
	"time"

	mqxmocks "gitee.com/flycash/notification-scheduler/internal/pkg/mqx/mocks"
	recipientmocks "gitee.com/flycash/notification-scheduler/internal/service/recipient/mocks"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func kafkaMessage(value string) *kafka.Message {
	topic := RegisteredTopic
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: 0, Offset: 7},
		Value:          []byte(value),
	}
}

func TestKafkaRegisteredEventConsumer_Consume(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		mock    func(consumer *mqxmocks.MockConsumer, svc *recipientmocks.MockService)
		wantErr string
	}{
		{
			name: "创建成功后提交",
			mock: func(consumer *mqxmocks.MockConsumer, svc *recipientmocks.MockService) {
				msg := kafkaMessage(`{"userId":"1","username":"alice","email":"alice@example.com"}`)
				gomock.InOrder(
					consumer.EXPECT().ReadMessage(time.Second).Return(msg, nil),
					svc.EXPECT().CreateIfAbsent(gomock.Any(), "1", "alice", "alice@example.com").Return(true, nil),
					consumer.EXPECT().CommitMessage(msg).Return(nil, nil),
				)
			},
		},
		{
			name: "没有消息",
			mock: func(consumer *mqxmocks.MockConsumer, _ *recipientmocks.MockService) {
				consumer.EXPECT().ReadMessage(time.Second).
					Return(nil, kafka.NewError(kafka.ErrTimedOut, "timed out", false))
			},
		},
		{
			name: "读取失败",
			mock: func(consumer *mqxmocks.MockConsumer, _ *recipientmocks.MockService) {
				consumer.EXPECT().ReadMessage(time.Second).Return(nil, errors.New("mock broker down"))
			},
			wantErr: "获取消息失败: mock broker down",
		},
		{
			name: "消息格式错误也提交",
			mock: func(consumer *mqxmocks.MockConsumer, _ *recipientmocks.MockService) {
				msg := kafkaMessage(`not json`)
				consumer.EXPECT().ReadMessage(time.Second).Return(msg, nil)
				consumer.EXPECT().CommitMessage(msg).Return(nil, nil)
			},
		},
		{
			name: "数据库错误不提交",
			mock: func(consumer *mqxmocks.MockConsumer, svc *recipientmocks.MockService) {
				consumer.EXPECT().ReadMessage(time.Second).
					Return(kafkaMessage(`{"userId":"4","username":"dave","email":"dave@example.com"}`), nil)
				svc.EXPECT().CreateIfAbsent(gomock.Any(), "4", "dave", "dave@example.com").Return(false, errors.New("mock db error"))
			},
			wantErr: "创建接收者失败: mock db error",
		},
		{
			name: "提交失败",
			mock: func(consumer *mqxmocks.MockConsumer, svc *recipientmocks.MockService) {
				msg := kafkaMessage(`{"userId":"5","username":"erin","email":"erin@example.com"}`)
				consumer.EXPECT().ReadMessage(time.Second).Return(msg, nil)
				svc.EXPECT().CreateIfAbsent(gomock.Any(), "5", "erin", "erin@example.com").Return(true, nil)
				consumer.EXPECT().CommitMessage(msg).Return(nil, errors.New("mock commit error"))
			},
			wantErr: "mock commit error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			consumer := mqxmocks.NewMockConsumer(ctrl)
			svc := recipientmocks.NewMockService(ctrl)
			tc.mock(consumer, svc)

			err := newKafkaRegisteredEventConsumer(svc, consumer).Consume(context.Background())
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestKafkaRegisteredEventConsumer_Start(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	closed := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	msg := kafkaMessage(`{"userId":"6","username":"frank","email":"frank@example.com"}`)

	consumer := mqxmocks.NewMockConsumer(ctrl)
	svc := recipientmocks.NewMockService(ctrl)
	consumer.EXPECT().ReadMessage(gomock.Any()).Return(msg, nil)
	svc.EXPECT().CreateIfAbsent(gomock.Any(), "6", "frank", "frank@example.com").Return(true, nil)
	consumer.EXPECT().CommitMessage(msg).DoAndReturn(func(*kafka.Message) ([]kafka.TopicPartition, error) {
		// 处理完第一条就停止
		cancel()
		return nil, nil
	})
	consumer.EXPECT().Close().DoAndReturn(func() error {
		close(closed)
		return nil
	})

	newKafkaRegisteredEventConsumer(svc, consumer).Start(ctx)
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("消费者没有在 ctx 取消后关闭")
	}
}
