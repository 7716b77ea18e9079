package mq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	myconfig "share_party_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Init 按 messageMode 选择事件发布方式
// "kafka" 写入 Kafka，其他取值只写日志
func Init(conf *myconfig.KafkaConfig) EventPublisher {
	if conf.MessageMode != "kafka" {
		zap.L().Info("事件投递使用日志模式", zap.String("mode", conf.MessageMode))
		return NewLogPublisher()
	}
	k := NewKafkaPublisher(conf)
	k.CreateTopic(conf)
	return k
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher 以拼单 id 作为消息 key，同一拼单的事件进入同一分区保证顺序
func NewKafkaPublisher(conf *myconfig.KafkaConfig) *kafkaPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           conf.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
	}
}

// CreateTopic 创建事件主题，已存在时 Kafka 会返回错误，记录后忽略
func (k *kafkaPublisher) CreateTopic(conf *myconfig.KafkaConfig) {
	conn, err := kafka.Dial("tcp", conf.HostPort)
	if err != nil {
		zap.L().Error("连接 Kafka 失败", zap.Error(err))
		return
	}
	defer conn.Close()

	partitions := conf.Partition
	if partitions < 1 {
		partitions = 1
	}
	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             conf.EventTopic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		zap.L().Warn("创建 Kafka 主题失败", zap.String("topic", conf.EventTopic), zap.Error(err))
	}
}

func (k *kafkaPublisher) Publish(ctx context.Context, event PartyEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.PartyId), 10)),
		Value: value,
	})
}

func (k *kafkaPublisher) Close() error {
	return k.writer.Close()
}

type logPublisher struct{}

// NewLogPublisher 未接入 Kafka 时使用
func NewLogPublisher() EventPublisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event PartyEvent) error {
	zap.L().Info("party event",
		zap.String("type", event.Type),
		zap.Uint("party_id", event.PartyId),
		zap.String("actor_id", event.ActorId),
		zap.String("target_id", event.TargetId),
	)
	return nil
}

func (logPublisher) Close() error { return nil }
