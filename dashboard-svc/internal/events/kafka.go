package events

import (
	"context"
	"encoding/json"
	"fmt"

	"foodie-dashboard/dashboard-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink publishes load events as JSON, keyed by page and panel so that
// events of one panel stay ordered within a partition.
type KafkaSink struct {
	Writer MessageWriter
}

func NewKafkaSink(writer MessageWriter) *KafkaSink {
	return &KafkaSink{Writer: writer}
}

func (s *KafkaSink) Send(ctx context.Context, ev domain.LoadEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode load event: %w", err)
	}
	return s.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Page + "/" + ev.Panel),
		Value: payload,
	})
}

var _ MessageWriter = (*kafka.Writer)(nil)
