// Package messaging 提供基于 Kafka 的领域事件发布者
package messaging

import (
	"context"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
	"github.com/wyfcoding/creatorcredit/pkg/mq"
)

// kafkaPublisher 将领域事件发送到 Kafka
type kafkaPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaPublisher 创建事件发布者实例
func NewKafkaPublisher(producer *mq.KafkaProducer) domain.EventPublisher {
	return &kafkaPublisher{producer: producer}
}

// Publish 发布一个事件，按用户 ID 作为分区键
func (p *kafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}
