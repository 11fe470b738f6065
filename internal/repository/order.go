package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")

type OrderFilter struct {
	BuyerID int64
	Status  model.OrderStatus
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.OrderRequest) error
	GetByID(ctx context.Context, id int64) (*model.OrderRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.OrderRequest, error)
}

type order struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &order{db: db}
}

func (r *order) Create(ctx context.Context, order *model.OrderRequest) error {
	return GetTx(ctx, r.db).Create(order).Error
}

// GetByID locks the order row inside a transaction; accept decisions on the
// same order serialize on it.
func (r *order) GetByID(ctx context.Context, id int64) (*model.OrderRequest, error) {
	var o model.OrderRequest

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Where("id = ?", id).First(&o).Error
	if err == nil {
		return &o, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}

	return nil, err
}

func (r *order) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	result := GetTx(ctx, r.db).Model(&model.OrderRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *order) List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.OrderRequest, error) {
	var orders []model.OrderRequest

	db := GetTx(ctx, r.db)
	if filter.BuyerID != 0 {
		db = db.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	err := db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
