package repository

import (
	"context"
	"errors"

	"github.com/YJ-0220/product-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWorkItemNotFound  = errors.New("WORK_ITEM_NOT_FOUND")
	ErrWorkItemDuplicate = errors.New("WORK_ITEM_DUPLICATE")
)

type WorkItemRepository interface {
	Create(ctx context.Context, item *model.WorkItem) error
	GetByID(ctx context.Context, id int64) (*model.WorkItem, error)
	GetByApplicationID(ctx context.Context, applicationID int64) (*model.WorkItem, error)
	Resubmit(ctx context.Context, item *model.WorkItem) error
	UpdateStatus(ctx context.Context, id int64, status model.WorkItemStatus) error
	DeleteByApplicationID(ctx context.Context, applicationID int64) error
}

type workItem struct {
	db *gorm.DB
}

func NewWorkItemRepository(db *gorm.DB) WorkItemRepository {
	return &workItem{db: db}
}

func (r *workItem) Create(ctx context.Context, item *model.WorkItem) error {
	err := GetTx(ctx, r.db).Omit(clause.Associations).Create(item).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrWorkItemDuplicate
	}

	return err
}

func (r *workItem) GetByID(ctx context.Context, id int64) (*model.WorkItem, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *workItem) GetByApplicationID(ctx context.Context, applicationID int64) (*model.WorkItem, error) {
	return r.first(ctx, "application_id = ?", applicationID)
}

func (r *workItem) first(ctx context.Context, query string, arg int64) (*model.WorkItem, error) {
	var item model.WorkItem

	err := lockForUpdate(ctx, GetTx(ctx, r.db)).Where(query, arg).First(&item).Error
	if err == nil {
		return &item, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkItemNotFound
	}

	return nil, err
}

// Resubmit replaces the content of a rejected item and puts it back to submitted.
func (r *workItem) Resubmit(ctx context.Context, item *model.WorkItem) error {
	result := GetTx(ctx, r.db).Model(&model.WorkItem{}).
		Where("id = ? AND status = ?", item.ID, model.WorkItemStatusRejected).
		Updates(map[string]any{
			"description":  item.Description,
			"file_url":     item.FileURL,
			"work_link":    item.WorkLink,
			"status":       model.WorkItemStatusSubmitted,
			"submitted_at": item.SubmittedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *workItem) UpdateStatus(ctx context.Context, id int64, status model.WorkItemStatus) error {
	result := GetTx(ctx, r.db).Model(&model.WorkItem{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrWorkItemNotFound
	}

	return nil
}

func (r *workItem) DeleteByApplicationID(ctx context.Context, applicationID int64) error {
	return GetTx(ctx, r.db).Where("application_id = ?", applicationID).Delete(&model.WorkItem{}).Error
}
