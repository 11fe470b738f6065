package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrChargeRequestNotFound   = errors.New("CHARGE_REQUEST_NOT_FOUND")
	ErrWithdrawRequestNotFound = errors.New("WITHDRAW_REQUEST_NOT_FOUND")
)

type ChargeRequestRepository interface {
	Create(ctx context.Context, req *model.PointChargeRequest) error
	GetByID(ctx context.Context, id int64) (*model.PointChargeRequest, error)
	Decide(ctx context.Context, id int64, status model.RequestStatus, approvedAt *time.Time) error
	ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) ([]model.PointChargeRequest, error)
}

type WithdrawRequestRepository interface {
	Create(ctx context.Context, req *model.PointWithdrawRequest) error
	GetByID(ctx context.Context, id int64) (*model.PointWithdrawRequest, error)
	Decide(ctx context.Context, id int64, status model.RequestStatus, processedAt time.Time) error
	ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) ([]model.PointWithdrawRequest, error)
}

type chargeRequest struct {
	db *gorm.DB
}

func NewChargeRequestRepository(db *gorm.DB) ChargeRequestRepository {
	return &chargeRequest{db: db}
}

func (r *chargeRequest) Create(ctx context.Context, req *model.PointChargeRequest) error {
	return GetTx(ctx, r.db).Create(req).Error
}

func (r *chargeRequest) GetByID(ctx context.Context, id int64) (*model.PointChargeRequest, error) {
	var req model.PointChargeRequest

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Where("id = ?", id).First(&req).Error
	if err == nil {
		return &req, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChargeRequestNotFound
	}

	return nil, err
}

// Decide moves a pending request to status; a request that is no longer
// pending yields ErrNoRowsAffected.
func (r *chargeRequest) Decide(ctx context.Context, id int64, status model.RequestStatus, approvedAt *time.Time) error {
	result := GetTx(ctx, r.db).Model(&model.PointChargeRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]any{"status": status, "approved_at": approvedAt})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *chargeRequest) ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) (
	[]model.PointChargeRequest, error) {
	var reqs []model.PointChargeRequest

	db := GetTx(ctx, r.db)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Order("requested_at ASC, id ASC").Limit(limit).Offset(offset).Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}

type withdrawRequest struct {
	db *gorm.DB
}

func NewWithdrawRequestRepository(db *gorm.DB) WithdrawRequestRepository {
	return &withdrawRequest{db: db}
}

func (r *withdrawRequest) Create(ctx context.Context, req *model.PointWithdrawRequest) error {
	return GetTx(ctx, r.db).Create(req).Error
}

func (r *withdrawRequest) GetByID(ctx context.Context, id int64) (*model.PointWithdrawRequest, error) {
	var req model.PointWithdrawRequest

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Where("id = ?", id).First(&req).Error
	if err == nil {
		return &req, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWithdrawRequestNotFound
	}

	return nil, err
}

func (r *withdrawRequest) Decide(ctx context.Context, id int64, status model.RequestStatus, processedAt time.Time) error {
	result := GetTx(ctx, r.db).Model(&model.PointWithdrawRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]any{"status": status, "processed_at": processedAt})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *withdrawRequest) ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) (
	[]model.PointWithdrawRequest, error) {
	var reqs []model.PointWithdrawRequest

	db := GetTx(ctx, r.db)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Order("requested_at ASC, id ASC").Limit(limit).Offset(offset).Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}
