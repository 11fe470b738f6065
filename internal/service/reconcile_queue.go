package service

import (
	"context"
	"time"

	"github.com/YJ-0220/product-sub000/internal/repository"
	"go.uber.org/zap"
)

type ReconcileQueueService interface {
	FindAccountsToQueue(ctx context.Context, limit int) ([]ReconcileAccountCommand, error)
	MarkAccountAsQueued(ctx context.Context, userID int64) error
}

type reconcileQueue struct {
	accountRepo repository.PointsAccountRepository
	logger      *zap.Logger
}

func NewReconcileQueueService(accountRepo repository.PointsAccountRepository,
	logger *zap.Logger) ReconcileQueueService {
	return &reconcileQueue{accountRepo: accountRepo, logger: logger}
}

func (r *reconcileQueue) FindAccountsToQueue(ctx context.Context, limit int) ([]ReconcileAccountCommand, error) {
	r.logger.Debug("Finding accounts to reconcile", zap.Int("batchSize", limit))

	accounts, err := r.accountRepo.FindToReconcile(ctx, limit)
	if err != nil {
		r.logger.Error("Failed to find accounts to reconcile", zap.Error(err))
		return nil, err
	}

	if len(accounts) == 0 {
		r.logger.Debug("No accounts found to reconcile")
		return nil, nil
	}

	commands := make([]ReconcileAccountCommand, 0, len(accounts))
	for _, account := range accounts {
		commands = append(commands, ReconcileAccountCommand{UserID: account.UserID})
	}

	return commands, nil
}

func (r *reconcileQueue) MarkAccountAsQueued(ctx context.Context, userID int64) error {
	if err := r.accountRepo.MarkReconcileQueued(ctx, userID, time.Now()); err != nil {
		r.logger.Error("Failed to mark account as queued",
			zap.Error(err),
			zap.Int64("userID", userID))
		return err
	}

	r.logger.Debug("Successfully marked account as queued", zap.Int64("userID", userID))

	return nil
}
