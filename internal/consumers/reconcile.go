package consumers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"go.uber.org/zap"
)

var ErrInvalidCommand = errors.New("INVALID_RECONCILE_COMMAND")

type ReconcileConsumer interface {
	Consume(ctx context.Context) error
}

type reconcileConsumer struct {
	service  service.ReconcileService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewReconcileConsumer(cfg *config.Config, service service.ReconcileService, consumer mq.Consumer,
	logger *zap.Logger) ReconcileConsumer {
	return &reconcileConsumer{
		service:  service,
		consumer: consumer,
		queue:    cfg.Reconcile.Queue,
		prefetch: cfg.Reconcile.Prefetch,
		logger:   logger,
	}
}

func (r *reconcileConsumer) Consume(ctx context.Context) error {
	return r.consumer.Consume(ctx, r.prefetch, r.queue, r.handle)
}

func (r *reconcileConsumer) handle(ctx context.Context, body []byte) error {
	var cmd service.ReconcileAccountCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		r.logger.Warn("Invalid reconcile command", zap.Error(err), zap.ByteString("body", body))
		return errors.Join(ErrInvalidCommand, err)
	}

	if cmd.UserID <= 0 {
		r.logger.Warn("Reconcile command without user", zap.ByteString("body", body))
		return ErrInvalidCommand
	}

	return r.service.Reconcile(ctx, cmd)
}
