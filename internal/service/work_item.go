package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	submitModeCreate   = "create"
	submitModeResubmit = "resubmit"
)

type WorkItemService interface {
	SubmitWorkItem(ctx context.Context, cmd SubmitWorkItemCommand) (model.WorkItem, error)
	DecideWorkItemStatus(ctx context.Context, actor Actor, cmd DecideWorkItemCommand) (model.WorkItem, error)
	GetWorkItem(ctx context.Context, applicationID int64) (model.WorkItem, error)
}

type workItem struct {
	orderRepo       repository.OrderRepository
	applicationRepo repository.ApplicationRepository
	workItemRepo    repository.WorkItemRepository
	txManager       repository.TxManager
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewWorkItemService(orderRepo repository.OrderRepository, applicationRepo repository.ApplicationRepository,
	workItemRepo repository.WorkItemRepository, txManager repository.TxManager, metrics *metrics.Metrics,
	logger *zap.Logger) WorkItemService {
	return &workItem{
		orderRepo:       orderRepo,
		applicationRepo: applicationRepo,
		workItemRepo:    workItemRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// SubmitWorkItem records work against the seller's accepted application. A
// rejected item is replaced in place; any other existing item blocks the call.
func (w *workItem) SubmitWorkItem(ctx context.Context, cmd SubmitWorkItemCommand) (model.WorkItem, error) {
	description := strings.TrimSpace(cmd.Description)
	if description == "" {
		return model.WorkItem{}, invalidInput(ErrMissingField)
	}

	var (
		item model.WorkItem
		mode string
	)
	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		app, err := w.applicationRepo.FindByOrderAndSeller(ctx, cmd.OrderID, cmd.SellerID)
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return forbidden(ErrApplicationNotAccepted)
		}
		if err != nil {
			return dbError(err)
		}

		if app.Status != model.ApplicationStatusAccepted {
			return forbidden(ErrApplicationNotAccepted)
		}

		item = model.WorkItem{
			OrderRequestID: cmd.OrderID,
			ApplicationID:  app.ID,
			Description:    description,
			FileURL:        cmd.FileURL,
			WorkLink:       cmd.WorkLink,
			Status:         model.WorkItemStatusSubmitted,
			SubmittedAt:    time.Now(),
		}

		existing, err := w.workItemRepo.GetByApplicationID(ctx, app.ID)
		if errors.Is(err, repository.ErrWorkItemNotFound) {
			mode = submitModeCreate
			err = w.workItemRepo.Create(ctx, &item)
			if errors.Is(err, repository.ErrWorkItemDuplicate) {
				return NewServiceError(constants.ErrCodeAlreadySubmitted, ErrWorkAlreadySubmitted)
			}
			if err != nil {
				return dbError(err)
			}
			return nil
		}
		if err != nil {
			return dbError(err)
		}

		if existing.Status != model.WorkItemStatusRejected {
			return NewServiceError(constants.ErrCodeAlreadySubmitted, ErrWorkAlreadySubmitted)
		}

		mode = submitModeResubmit
		item.ID = existing.ID
		err = w.workItemRepo.Resubmit(ctx, &item)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewServiceError(constants.ErrCodeAlreadySubmitted, ErrWorkAlreadySubmitted)
		}
		if err != nil {
			return dbError(err)
		}

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		w.logger.Warn("Failed to submit work item",
			zap.Int64("orderID", cmd.OrderID),
			zap.Int64("sellerID", cmd.SellerID),
			zap.Error(err))
		return model.WorkItem{}, err
	}

	w.metrics.RecordWorkItemSubmitted(mode)
	w.logger.Info("Work item submitted",
		zap.Int64("workItemID", item.ID),
		zap.Int64("applicationID", item.ApplicationID),
		zap.String("mode", mode))

	return item, nil
}

// DecideWorkItemStatus lets an admin or the order's buyer approve or reject a
// submitted item. Order status is left to the caller.
func (w *workItem) DecideWorkItemStatus(ctx context.Context, actor Actor, cmd DecideWorkItemCommand) (
	model.WorkItem, error) {
	if !cmd.Decision.Decision() {
		return model.WorkItem{}, invalidInput(ErrInvalidDecision)
	}

	var decided model.WorkItem
	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		item, err := w.workItemRepo.GetByID(ctx, cmd.WorkItemID)
		if errors.Is(err, repository.ErrWorkItemNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if !actor.IsAdmin() {
			order, err := w.orderRepo.GetByID(ctx, item.OrderRequestID)
			if errors.Is(err, repository.ErrOrderNotFound) {
				return notFound(err)
			}
			if err != nil {
				return dbError(err)
			}

			if order.BuyerID != actor.UserID {
				return forbidden(ErrNotOrderBuyer)
			}
		}

		if item.Status != model.WorkItemStatusSubmitted {
			return invalidState(ErrWorkItemNotSubmitted)
		}

		if err := w.workItemRepo.UpdateStatus(ctx, item.ID, cmd.Decision); err != nil {
			if errors.Is(err, repository.ErrWorkItemNotFound) {
				return notFound(err)
			}
			return dbError(err)
		}

		item.Status = cmd.Decision
		decided = *item

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		w.logger.Warn("Failed to decide work item",
			zap.Int64("workItemID", cmd.WorkItemID),
			zap.String("decision", string(cmd.Decision)),
			zap.Error(err))
		return model.WorkItem{}, err
	}

	w.logger.Info("Work item decided",
		zap.Int64("workItemID", decided.ID),
		zap.Int64("actorID", actor.UserID),
		zap.String("status", string(decided.Status)))

	return decided, nil
}

func (w *workItem) GetWorkItem(ctx context.Context, applicationID int64) (model.WorkItem, error) {
	item, err := w.workItemRepo.GetByApplicationID(ctx, applicationID)
	if errors.Is(err, repository.ErrWorkItemNotFound) {
		return model.WorkItem{}, notFound(err)
	}

	if err != nil {
		w.logger.Error("Failed to get work item", zap.Int64("applicationID", applicationID), zap.Error(err))
		return model.WorkItem{}, dbError(err)
	}

	return *item, nil
}
