package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/synaptica-ai/scribe/pkg/common/config"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/common/models"
)

// ErrDeadLetter marks an event that can never be processed. Handlers wrap it
// so the consumer parks the message on the DLQ without retrying.
var ErrDeadLetter = errors.New("dead letter")

type Consumer struct {
	reader   *kafka.Reader
	dlq      *Producer
	attempts int
	backoff  time.Duration
}

type EventHandler func(ctx context.Context, event models.Event) error

func NewConsumer(topic string, groupID string) *Consumer {
	cfg := config.Load()
	if groupID == "" {
		groupID = cfg.KafkaGroupID
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,    // utterances are small and latency matters
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{reader: reader, attempts: 3, backoff: 500 * time.Millisecond}
}

// WithDeadLetter routes unprocessable messages to p.
func (c *Consumer) WithDeadLetter(p *Producer) *Consumer {
	c.dlq = p
	return c
}

func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			message, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Log.WithError(err).Error("Failed to fetch message")
				continue
			}

			var event models.Event
			if err := json.Unmarshal(message.Value, &event); err != nil {
				logger.Log.WithError(err).Error("Failed to unmarshal event")
				c.deadLetter(ctx, message, err)
				c.commit(ctx, message)
				continue
			}

			if err := runHandler(ctx, handler, event, c.attempts, c.backoff); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// FetchMessage has already moved past this offset and a later
				// commit would skip it, so a message that keeps failing is
				// parked on the DLQ instead of being left uncommitted.
				logger.Log.WithError(err).WithField("event_id", event.ID).Warn("Dead-lettering event")
				c.deadLetter(ctx, message, err)
				c.commit(ctx, message)
				continue
			}

			c.commit(ctx, message)
		}
	}
}

// runHandler retries transient handler failures with a linear backoff.
// ErrDeadLetter is returned at once.
func runHandler(ctx context.Context, handler EventHandler, event models.Event, attempts int, backoff time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = handler(ctx, event)
		if err == nil || errors.Is(err, ErrDeadLetter) {
			return err
		}
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"event_id": event.ID,
			"attempt":  attempt,
		}).Error("Failed to process event")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * backoff):
		}
	}
	return err
}

func (c *Consumer) deadLetter(ctx context.Context, message kafka.Message, cause error) {
	if c.dlq == nil {
		return
	}
	headers := append([]kafka.Header{}, message.Headers...)
	headers = append(headers,
		kafka.Header{Key: "dlq-reason", Value: []byte(cause.Error())},
		kafka.Header{Key: "dlq-topic", Value: []byte(message.Topic)},
	)
	if err := c.dlq.PublishRaw(ctx, message.Key, message.Value, headers...); err != nil {
		logger.Log.WithError(err).Error("Failed to publish to DLQ")
	}
}

func (c *Consumer) commit(ctx context.Context, message kafka.Message) {
	if err := c.reader.CommitMessages(ctx, message); err != nil {
		logger.Log.WithError(err).Error("Failed to commit message")
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
