package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"InvestScout/internal/domain/models"
	pkgkafka "InvestScout/pkg/kafka"
)

// KafkaSink publishes every produced recommendation set as one event, keyed
// by asset class so per-class ordering is preserved within a partition.
type KafkaSink struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaSink(producer *pkgkafka.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Store(ctx context.Context, set *models.RecommendationSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal recommendation set: %w", err)
	}
	return s.producer.Publish(ctx, s.topic, []byte(set.Class), payload)
}

func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
