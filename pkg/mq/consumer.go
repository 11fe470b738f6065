package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const cancelGrace = 50 * time.Millisecond

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch     *amqp.Channel
	tag    string
	logger *zap.Logger
}

func NewRabbitConsumer(ch *amqp.Channel, tag string, logger *zap.Logger) Consumer {
	return &RabbitConsumer{ch: ch, tag: tag, logger: logger}
}

// Consume blocks until ctx is done or the broker closes the delivery channel.
// Successful deliveries are acked. Failures are nacked and requeued only when
// the error is temporary, otherwise they go to the queue's dead-letter queue.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch on %s: %w", queue, err)
	}

	deliveries, err := c.ch.Consume(queue, c.tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel(c.tag, false)
			time.Sleep(cancelGrace)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.dispatch(ctx, d, handler)
		}
	}
}

func (c *RabbitConsumer) dispatch(ctx context.Context, d amqp.Delivery, handler Handle) {
	err := handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			c.logger.Warn("Failed to ack delivery", zap.String("messageID", d.MessageId), zap.Error(ackErr))
		}
		return
	}

	requeue := ShouldRequeue(err)
	c.logger.Warn("Delivery failed",
		zap.String("messageID", d.MessageId),
		zap.Bool("redelivered", d.Redelivered),
		zap.Bool("requeue", requeue),
		zap.Error(err))

	if nackErr := d.Nack(false, requeue); nackErr != nil {
		c.logger.Warn("Failed to nack delivery", zap.String("messageID", d.MessageId), zap.Error(nackErr))
	}
}

// ShouldRequeue reports whether err, or anything it wraps, is temporary.
func ShouldRequeue(err error) bool {
	var te interface{ Temporary() bool }
	return errors.As(err, &te) && te.Temporary()
}
