package repository

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PointsTransactionRepository interface {
	Create(ctx context.Context, tx *model.PointsTransaction) error
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]model.PointsTransaction, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	SumByUserID(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type pointsTransaction struct {
	db *gorm.DB
}

func NewPointsTransactionRepository(db *gorm.DB) PointsTransactionRepository {
	return &pointsTransaction{db: db}
}

func (r *pointsTransaction) Create(ctx context.Context, tx *model.PointsTransaction) error {
	return GetTx(ctx, r.db).Create(tx).Error
}

func (r *pointsTransaction) ListByUserID(ctx context.Context, userID int64, limit, offset int) (
	[]model.PointsTransaction, error) {
	var txs []model.PointsTransaction

	err := GetTx(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *pointsTransaction) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64

	err := GetTx(ctx, r.db).Model(&model.PointsTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *pointsTransaction) SumByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal

	row := GetTx(ctx, r.db).Model(&model.PointsTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
