package publishers

import (
	"context"
	"encoding/json"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"go.uber.org/zap"
)

type ReconcilePublisher interface {
	Publish(ctx context.Context) (int, error)
}

type reconcilePublisher struct {
	service   service.ReconcileQueueService
	publisher mq.Publisher
	queue     string
	batchSize int
	logger    *zap.Logger
}

func NewReconcilePublisher(cfg *config.Config, service service.ReconcileQueueService, publisher mq.Publisher,
	logger *zap.Logger) ReconcilePublisher {
	return &reconcilePublisher{
		service:   service,
		publisher: publisher,
		queue:     cfg.Reconcile.Queue,
		batchSize: cfg.Reconcile.BatchSize,
		logger:    logger,
	}
}

// Publish queues one reconcile command per account that is due. An account is
// marked as queued only after its command reached the broker, so a failed
// publish is retried on the next tick.
func (r *reconcilePublisher) Publish(ctx context.Context) (int, error) {
	commands, err := r.service.FindAccountsToQueue(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	if len(commands) == 0 {
		return 0, nil
	}

	published := 0
	for _, cmd := range commands {
		body, err := json.Marshal(cmd)
		if err != nil {
			r.logger.Error("Failed to encode reconcile command", zap.Error(err), zap.Int64("userID", cmd.UserID))
			continue
		}

		if err := r.publisher.Publish(ctx, "", r.queue, body); err != nil {
			r.logger.Error("Failed to publish reconcile command",
				zap.Error(err),
				zap.Int64("userID", cmd.UserID))
			continue
		}

		if err := r.service.MarkAccountAsQueued(ctx, cmd.UserID); err != nil {
			continue
		}

		published++
	}

	r.logger.Info("Published reconcile commands",
		zap.Int("published", published),
		zap.Int("total", len(commands)))

	return published, nil
}
