package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound    = errors.New("ACCOUNT_NOT_FOUND")
	ErrAccountExists      = errors.New("ACCOUNT_EXISTS")
	ErrInsufficientPoints = errors.New("INSUFFICIENT_POINTS")
	ErrNoRowsAffected     = errors.New("NO_ROWS_AFFECTED")
)

type PointsAccountRepository interface {
	Create(ctx context.Context, account *model.PointsAccount) error
	GetByUserID(ctx context.Context, userID int64) (*model.PointsAccount, error)
	IncreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
	DecreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
	FindToReconcile(ctx context.Context, limit int) ([]model.PointsAccount, error)
	MarkReconcileQueued(ctx context.Context, userID int64, at time.Time) error
	MarkReconciled(ctx context.Context, userID int64, at time.Time) error
}

type pointsAccount struct {
	db *gorm.DB
}

func NewPointsAccountRepository(db *gorm.DB) PointsAccountRepository {
	return &pointsAccount{db: db}
}

func (r *pointsAccount) Create(ctx context.Context, account *model.PointsAccount) error {
	db := GetTx(ctx, r.db)
	err := db.Create(account).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrAccountExists
	}

	return err
}

// GetByUserID locks the account row when called inside a transaction.
func (r *pointsAccount) GetByUserID(ctx context.Context, userID int64) (*model.PointsAccount, error) {
	var account model.PointsAccount

	db := lockForUpdate(ctx, GetTx(ctx, r.db))
	err := db.Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}

	return nil, err
}

func (r *pointsAccount) IncreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	db := GetTx(ctx, r.db)
	result := db.Model(&model.PointsAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + CAST(? AS DECIMAL(20,2))", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// DecreaseBalance only applies when the stored balance covers amount, so a
// stale read can never drive the balance negative. Amounts are cast so the
// arithmetic stays in DECIMAL rather than DOUBLE.
func (r *pointsAccount) DecreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	db := GetTx(ctx, r.db)
	result := db.Model(&model.PointsAccount{}).
		Where("user_id = ? AND balance >= CAST(? AS DECIMAL(20,2))", userID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - CAST(? AS DECIMAL(20,2))", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrInsufficientPoints
	}

	return nil
}

func (r *pointsAccount) FindToReconcile(ctx context.Context, limit int) ([]model.PointsAccount, error) {
	var accounts []model.PointsAccount

	err := GetTx(ctx, r.db).
		Where("reconcile_queued_at IS NULL OR reconcile_queued_at < updated_at").
		Order("updated_at ASC").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// MarkReconcileQueued and MarkReconciled leave updated_at untouched so that
// bookkeeping never re-queues an account by itself.
func (r *pointsAccount) MarkReconcileQueued(ctx context.Context, userID int64, at time.Time) error {
	return r.markColumn(ctx, userID, "reconcile_queued_at", at)
}

func (r *pointsAccount) MarkReconciled(ctx context.Context, userID int64, at time.Time) error {
	return r.markColumn(ctx, userID, "reconciled_at", at)
}

func (r *pointsAccount) markColumn(ctx context.Context, userID int64, column string, at time.Time) error {
	result := GetTx(ctx, r.db).Model(&model.PointsAccount{}).
		Where("user_id = ?", userID).
		UpdateColumn(column, at)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
