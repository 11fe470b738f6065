package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound  = errors.New("APPLICATION_NOT_FOUND")
	ErrApplicationDuplicate = errors.New("APPLICATION_DUPLICATE")
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.OrderApplication) error
	GetByID(ctx context.Context, id int64) (*model.OrderApplication, error)
	GetWithSeller(ctx context.Context, id int64) (*model.OrderApplication, error)
	FindByOrderAndSeller(ctx context.Context, orderID, sellerID int64) (*model.OrderApplication, error)
	CountByOrderAndStatus(ctx context.Context, orderID int64, status model.ApplicationStatus) (int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.ApplicationStatus) error
	RejectPendingSiblings(ctx context.Context, orderID, exceptID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderApplication, error)
}

type application struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &application{db: db}
}

func (r *application) Create(ctx context.Context, app *model.OrderApplication) error {
	err := GetTx(ctx, r.db).Omit(clause.Associations).Create(app).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrApplicationDuplicate
	}

	return err
}

func (r *application) GetByID(ctx context.Context, id int64) (*model.OrderApplication, error) {
	var app model.OrderApplication

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Where("id = ?", id).First(&app).Error
	if err == nil {
		return &app, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}

	return nil, err
}

func (r *application) GetWithSeller(ctx context.Context, id int64) (*model.OrderApplication, error) {
	var app model.OrderApplication

	err := GetTx(ctx, r.db).Preload("Seller").Where("id = ?", id).First(&app).Error
	if err == nil {
		return &app, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}

	return nil, err
}

func (r *application) FindByOrderAndSeller(ctx context.Context, orderID, sellerID int64) (
	*model.OrderApplication, error) {
	var app model.OrderApplication

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).
		Where("order_request_id = ? AND seller_id = ?", orderID, sellerID).
		First(&app).Error
	if err == nil {
		return &app, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}

	return nil, err
}

func (r *application) CountByOrderAndStatus(ctx context.Context, orderID int64, status model.ApplicationStatus) (
	int64, error) {
	var count int64

	// Locking read so the count sees rows committed after the snapshot.
	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Model(&model.OrderApplication{}).
		Where("order_request_id = ? AND status = ?", orderID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateStatus is a compare-and-set on the current status.
func (r *application) UpdateStatus(ctx context.Context, id int64, from, to model.ApplicationStatus) error {
	result := GetTx(ctx, r.db).Model(&model.OrderApplication{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *application) RejectPendingSiblings(ctx context.Context, orderID, exceptID int64) (int64, error) {
	result := GetTx(ctx, r.db).Model(&model.OrderApplication{}).
		Where("order_request_id = ? AND id <> ? AND status = ?", orderID, exceptID, model.ApplicationStatusPending).
		Updates(map[string]any{"status": model.ApplicationStatusRejected, "updated_at": time.Now()})

	return result.RowsAffected, result.Error
}

func (r *application) Delete(ctx context.Context, id int64) error {
	result := GetTx(ctx, r.db).Where("id = ?", id).Delete(&model.OrderApplication{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

func (r *application) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderApplication, error) {
	var apps []model.OrderApplication

	err := GetTx(ctx, r.db).Preload("Seller").
		Where("order_request_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}
