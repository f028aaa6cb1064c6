package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storyteller-server/shared/models"
)

// UsageReconciliationEvent records a story that was delivered to the user
// without its usage commit landing. A background consumer replays these
// against the ledger so delivered stories are never lost from accounting.
type UsageReconciliationEvent struct {
	EventID    string            `json:"eventId"`
	UserID     string            `json:"userId"`
	Field      models.UsageField `json:"field"`
	Observed   int               `json:"observed"`
	Reason     string            `json:"reason"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// ReconciliationPublisher publishes usage reconciliation events.
type ReconciliationPublisher interface {
	PublishUsageReconciliation(ctx context.Context, event UsageReconciliationEvent) error
}

type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQReconciliationPublisher opens a channel on the given connection
// and declares the reconciliation queue. The queue is durable; events must
// survive a broker restart.
func NewRabbitMQReconciliationPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (ReconciliationPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("reconciliation publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("reconciliation publisher: failed to declare queue %q: %w", queueName, err)
	}

	log := logger.Named("ReconciliationPublisher")
	log.Info("Reconciliation queue declared", zap.String("queue", queueName))
	return &rabbitMQPublisher{channel: ch, queueName: queueName, logger: log}, nil
}

// PublishUsageReconciliation publishes one event to the reconciliation queue.
func (p *rabbitMQPublisher) PublishUsageReconciliation(ctx context.Context, event UsageReconciliationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal reconciliation event",
			zap.String("eventID", event.EventID), zap.String("userID", event.UserID), zap.Error(err))
		return fmt.Errorf("failed to marshal reconciliation event %s: %w", event.EventID, err)
	}

	if err := p.publishMessage(ctx, body); err != nil {
		p.logger.Error("Failed to publish reconciliation event",
			zap.String("eventID", event.EventID), zap.String("userID", event.UserID), zap.Error(err))
		return fmt.Errorf("failed to publish reconciliation event %s: %w", event.EventID, err)
	}
	return nil
}

func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (default)
			p.queueName, // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "story-service",
			},
		)
		if err == nil {
			return nil
		}
		p.logger.Warn("Publish attempt failed",
			zap.Int("attempt", attempt), zap.String("queue", p.queueName), zap.Error(err))
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return fmt.Errorf("failed to publish to queue %s after retries: %w", p.queueName, err)
}
