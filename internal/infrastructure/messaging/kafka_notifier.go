package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaOrderNotifier publishes payment status updates keyed by order id, so updates for the
// same order stay in one partition.
type KafkaOrderNotifier struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

var _ interfaces.IOrderNotifier = (*KafkaOrderNotifier)(nil)

type paymentStatusMessage struct {
	OrderID            string                 `json:"orderId"`
	PaymentStatus      entities.PaymentStatus `json:"paymentStatus"`
	PaymentReferenceID string                 `json:"paymentReferenceId,omitempty"`
	OccurredAt         time.Time              `json:"occurredAt"`
}

func NewKafkaOrderNotifier(cfg config.KafkaConfig, l *zap.Logger) *KafkaOrderNotifier {
	brokers := cfg.Brokers()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Logger:       zap.NewStdLog(l.With(zap.String("kafka_component", "producer"))),
		ErrorLogger:  zap.NewStdLog(l.With(zap.String("kafka_component", "producer_errors"))),
	}
	l.Info("Kafka producer initialized", zap.Strings("brokers", brokers), zap.String("topic", cfg.PaymentStatusTopic))
	return newKafkaOrderNotifier(writer, cfg.PaymentStatusTopic, l)
}

func newKafkaOrderNotifier(w messageWriter, topic string, l *zap.Logger) *KafkaOrderNotifier {
	return &KafkaOrderNotifier{writer: w, topic: topic, logger: l.With(zap.String("component", "kafka_notifier"))}
}

func (n *KafkaOrderNotifier) Notify(ctx context.Context, update entities.PaymentStatusUpdate) error {
	value, err := json.Marshal(paymentStatusMessage{
		OrderID:            update.OrderID,
		PaymentStatus:      update.Status,
		PaymentReferenceID: update.ReferenceID,
		OccurredAt:         time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: n.topic,
		Key:   []byte(update.OrderID),
		Value: value,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.Error("Failed to produce message to Kafka topic",
			zap.String("topic", n.topic),
			zap.String("order_id", update.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to produce message: %w", err)
	}
	n.logger.Debug("Produced message to topic", zap.String("topic", n.topic), zap.String("order_id", update.OrderID))
	return nil
}

func (n *KafkaOrderNotifier) Close() error {
	if err := n.writer.Close(); err != nil {
		n.logger.Error("Failed to close Kafka producer", zap.Error(err))
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	n.logger.Info("Kafka producer closed.")
	return nil
}
