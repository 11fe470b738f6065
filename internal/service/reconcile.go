package service

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	reconcileResultMatch   = "match"
	reconcileResultMissing = "missing"
)

type ReconcileService interface {
	Reconcile(ctx context.Context, cmd ReconcileAccountCommand) error
}

type reconcile struct {
	accountRepo     repository.PointsAccountRepository
	transactionRepo repository.PointsTransactionRepository
	txManager       repository.TxManager
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewReconcileService(accountRepo repository.PointsAccountRepository,
	transactionRepo repository.PointsTransactionRepository, txManager repository.TxManager,
	metrics *metrics.Metrics, logger *zap.Logger) ReconcileService {
	return &reconcile{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Reconcile compares an account's balance with the sum of its transaction log.
// The account row is locked so no mutation lands between the two reads.
// Storage failures are returned as temporary so the command is redelivered.
func (r *reconcile) Reconcile(ctx context.Context, cmd ReconcileAccountCommand) error {
	var (
		found        bool
		balance, sum decimal.Decimal
	)
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		account, err := r.accountRepo.GetByUserID(ctx, cmd.UserID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		balance = account.Balance

		sum, err = r.transactionRepo.SumByUserID(ctx, cmd.UserID)
		if err != nil {
			return err
		}

		return r.accountRepo.MarkReconciled(ctx, cmd.UserID, time.Now())
	})
	if err != nil {
		r.logger.Error("Failed to reconcile account",
			zap.Int64("userID", cmd.UserID),
			zap.Error(err))
		return mq.Temporary(err)
	}

	if !found {
		r.metrics.RecordReconcile(reconcileResultMissing)
		r.logger.Warn("Account to reconcile not found", zap.Int64("userID", cmd.UserID))
		return nil
	}

	if !sum.Equal(balance) {
		r.metrics.RecordReconcileMismatch()
		r.logger.Error("Ledger mismatch",
			zap.Int64("userID", cmd.UserID),
			zap.String("balance", balance.String()),
			zap.String("transactionSum", sum.String()))
		return nil
	}

	r.metrics.RecordReconcile(reconcileResultMatch)
	r.logger.Debug("Account reconciled", zap.Int64("userID", cmd.UserID))

	return nil
}
