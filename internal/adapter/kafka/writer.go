package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/crime-report-service/internal/config"
	"github.com/couchcryptid/crime-report-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces report events to a Kafka topic.
// It implements service.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a report event and writes it keyed by its query, so
// reports for the same point land on the same partition.
func (w *Writer) Publish(ctx context.Context, event domain.ReportEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	w.logger.Debug("report published", "topic", w.writer.Topic, "key", string(msg.Key))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ReportEvent into a Kafka message.
func serializeToMessage(event domain.ReportEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Query.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "total_crime", Value: []byte(strconv.Itoa(event.Report.TotalCount))},
			{Key: "generated_at", Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
