package repository

import (
	"context"
	"fmt"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	applogger "GearValue/pkg/logger"
)

// MessageProducer is the part of the Kafka producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaSnapshotPublisher writes snapshots as JSON, keyed by catalog name so
// every snapshot of one catalog lands on the same partition.
type KafkaSnapshotPublisher struct {
	producer MessageProducer
	topic    string
}

func NewKafkaSnapshotPublisher(p MessageProducer, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: p, topic: topic}
}

func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, s *models.Snapshot) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(s.Catalog), s); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", s.ID, err)
	}
	return nil
}

func (p *KafkaSnapshotPublisher) Close() error {
	return p.producer.Close()
}

// LogSnapshotPublisher writes snapshots to the structured log.
type LogSnapshotPublisher struct {
	l *applogger.Logger
}

func NewLogSnapshotPublisher(l *applogger.Logger) *LogSnapshotPublisher {
	if l == nil {
		l = applogger.Nop()
	}
	return &LogSnapshotPublisher{l: l}
}

func (p *LogSnapshotPublisher) Publish(_ context.Context, s *models.Snapshot) error {
	p.l.Info("valuation snapshot",
		applogger.String("id", s.ID),
		applogger.String("catalog", s.Catalog),
		applogger.Int64("total", s.Total),
		applogger.Any("subtotals", s.Subtotals),
	)
	return nil
}

func (p *LogSnapshotPublisher) Close() error { return nil }

var (
	_ drepo.SnapshotPublisher = (*KafkaSnapshotPublisher)(nil)
	_ drepo.SnapshotPublisher = (*LogSnapshotPublisher)(nil)
)
