package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"settlement_service/internal/domain/entities"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaOrderNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	n := newKafkaOrderNotifier(w, "payment_status_updates", zap.NewNop())

	err := n.Notify(context.Background(), entities.PaymentStatusUpdate{
		OrderID: "ord-1", Status: entities.PaymentStatusPaid, ReferenceID: "pi_1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if msg.Topic != "payment_status_updates" || string(msg.Key) != "ord-1" {
		t.Fatalf("unexpected message routing: topic=%s key=%s", msg.Topic, msg.Key)
	}
	var body paymentStatusMessage
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OrderID != "ord-1" || body.PaymentStatus != entities.PaymentStatusPaid || body.PaymentReferenceID != "pi_1" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.OccurredAt.IsZero() {
		t.Fatalf("expected occurredAt")
	}

	if err := n.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer closed, err=%v", err)
	}
}

func TestKafkaOrderNotifier_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	n := newKafkaOrderNotifier(&fakeWriter{err: boom}, "t", zap.NewNop())
	err := n.Notify(context.Background(), entities.PaymentStatusUpdate{OrderID: "ord-1", Status: entities.PaymentStatusFailed})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}
