package ioc

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-scheduler/internal/event/user"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/gotomicro/ego/core/econf"
	"github.com/hashicorp/go-multierror"
)

const (
	mqTypeMemory = "memory"
	mqTypeKafka  = "kafka"

	defaultKafkaGroupID = "notification_scheduler"
)

type MQTopic struct {
	Name       string `yaml:"name"`
	Partitions int    `yaml:"partitions"`
}

type KafkaConfig struct {
	BootstrapServers string `yaml:"bootstrapServers"`
	GroupID          string `yaml:"groupId"`
}

// MQConfig 生产环境用 kafka，内存实现只在单进程里可用
type MQConfig struct {
	Type   string      `yaml:"type"`
	Topics []MQTopic   `yaml:"topics"`
	Kafka  KafkaConfig `yaml:"kafka"`
}

func (c MQConfig) Validate() error {
	var err error
	switch c.Type {
	case mqTypeMemory:
	case mqTypeKafka:
		if c.Kafka.BootstrapServers == "" {
			err = multierror.Append(err, fmt.Errorf("mq.kafka.bootstrapServers 不能为空"))
		}
	default:
		err = multierror.Append(err, fmt.Errorf("不支持的消息队列类型 %q", c.Type))
	}
	return err
}

func InitMQConfig() MQConfig {
	cfg := MQConfig{
		Type:   mqTypeMemory,
		Topics: []MQTopic{{Name: user.RegisteredTopic, Partitions: 1}},
		Kafka:  KafkaConfig{GroupID: defaultKafkaGroupID},
	}
	if econf.Get("mq") != nil {
		if err := econf.UnmarshalKey("mq", &cfg); err != nil {
			panic(err)
		}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = defaultKafkaGroupID
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func InitMemoryMQ(cfg MQConfig) mq.MQ {
	q := memory.NewMQ()
	for _, t := range cfg.Topics {
		err := q.CreateTopic(context.Background(), t.Name, t.Partitions)
		if err != nil {
			panic(err)
		}
	}
	return q
}

func InitKafkaConsumer(cfg KafkaConfig) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.BootstrapServers,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": "false",
	})
	if err != nil {
		panic(fmt.Sprintf("创建 kafka 消费者失败: %v", err))
	}
	return consumer
}
