package mqx

import (
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Consumer *kafka.Consumer 里用到的部分，方便测试
//
//go:generate mockgen -source=./consumer.go -package=mqxmocks -destination=./mocks/consumer.mock.go Consumer
type Consumer interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	CommitMessage(msg *kafka.Message) ([]kafka.TopicPartition, error)
	Close() error
}

var _ Consumer = (*kafka.Consumer)(nil)
