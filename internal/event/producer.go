// Package event publishes catalog domain events to Kafka.
package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/pkg/kafka"
	"github.com/chronora/retailops/pkg/logger"
)

// Kafka topics.
const (
	TopicProducts = "retailops.products"
	TopicImports  = "retailops.imports"
)

// Event types.
const (
	TypeProductCreated  = "product.created"
	TypeProductUpdated  = "product.updated"
	TypeProductDeleted  = "product.deleted"
	TypeImportCompleted = "import.completed"
)

const source = "catalog-service"

// Publisher emits domain events. Publishing is best-effort: implementations
// log failures and never fail the triggering operation.
type Publisher interface {
	ProductCreated(ctx context.Context, p *domain.Product)
	ProductUpdated(ctx context.Context, p *domain.Product)
	ProductDeleted(ctx context.Context, id uuid.UUID)
	ImportCompleted(ctx context.Context, total, success, failed int)
}

// KafkaPublisher publishes events through a Kafka producer.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed publisher.
func NewKafkaPublisher(producer *kafka.Producer, log *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: log}
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}
	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("aggregate_id", aggregateID),
			slog.String("error", err.Error()),
		)
	}
}

// ProductCreated publishes a product.created event.
func (p *KafkaPublisher) ProductCreated(ctx context.Context, prod *domain.Product) {
	p.publish(ctx, TopicProducts, TypeProductCreated, prod.ID.String(), "product", prod)
}

// ProductUpdated publishes a product.updated event.
func (p *KafkaPublisher) ProductUpdated(ctx context.Context, prod *domain.Product) {
	p.publish(ctx, TopicProducts, TypeProductUpdated, prod.ID.String(), "product", prod)
}

// ProductDeleted publishes a product.deleted event.
func (p *KafkaPublisher) ProductDeleted(ctx context.Context, id uuid.UUID) {
	p.publish(ctx, TopicProducts, TypeProductDeleted, id.String(), "product", map[string]string{"id": id.String()})
}

// ImportCompleted publishes an import.completed event with row counts.
func (p *KafkaPublisher) ImportCompleted(ctx context.Context, total, success, failed int) {
	p.publish(ctx, TopicImports, TypeImportCompleted, uuid.New().String(), "import", map[string]int{
		"total":   total,
		"success": success,
		"failed":  failed,
	})
}

// NoopPublisher discards all events. Used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) ProductCreated(context.Context, *domain.Product) {}
func (NoopPublisher) ProductUpdated(context.Context, *domain.Product) {}
func (NoopPublisher) ProductDeleted(context.Context, uuid.UUID)       {}
func (NoopPublisher) ImportCompleted(context.Context, int, int, int)  {}
