package service

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"go.uber.org/zap"
)

type ApplicationService interface {
	SubmitApplication(ctx context.Context, cmd SubmitApplicationCommand) (model.OrderApplication, error)
	WithdrawApplication(ctx context.Context, cmd WithdrawApplicationCommand) error
	DecideApplication(ctx context.Context, actor Actor, cmd DecideApplicationCommand) (DecideApplicationResponse, error)
	DeleteAcceptedApplication(ctx context.Context, actor Actor, applicationID int64) error
	GetApplication(ctx context.Context, applicationID int64) (model.OrderApplication, error)
	ListApplications(ctx context.Context, orderID int64) ([]model.OrderApplication, error)
}

type application struct {
	orderRepo       repository.OrderRepository
	applicationRepo repository.ApplicationRepository
	workItemRepo    repository.WorkItemRepository
	txManager       repository.TxManager
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewApplicationService(orderRepo repository.OrderRepository, applicationRepo repository.ApplicationRepository,
	workItemRepo repository.WorkItemRepository, txManager repository.TxManager, metrics *metrics.Metrics,
	logger *zap.Logger) ApplicationService {
	return &application{
		orderRepo:       orderRepo,
		applicationRepo: applicationRepo,
		workItemRepo:    workItemRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

func (a *application) SubmitApplication(ctx context.Context, cmd SubmitApplicationCommand) (
	model.OrderApplication, error) {
	if cmd.ProposedPrice != nil {
		if err := validateAmount(*cmd.ProposedPrice); err != nil {
			return model.OrderApplication{}, err
		}
	}

	var app model.OrderApplication
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		order, err := a.orderRepo.GetByID(ctx, cmd.OrderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if order.Status != model.OrderStatusPending {
			return invalidState(ErrOrderNotAccepting)
		}

		_, err = a.applicationRepo.FindByOrderAndSeller(ctx, cmd.OrderID, cmd.SellerID)
		if err == nil {
			return NewServiceError(constants.ErrCodeDuplicateApplication, repository.ErrApplicationDuplicate)
		}
		if !errors.Is(err, repository.ErrApplicationNotFound) {
			return dbError(err)
		}

		now := time.Now()
		app = model.OrderApplication{
			OrderRequestID:    cmd.OrderID,
			SellerID:          cmd.SellerID,
			Message:           cmd.Message,
			ProposedPrice:     cmd.ProposedPrice,
			EstimatedDelivery: cmd.EstimatedDelivery,
			Status:            model.ApplicationStatusPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		err = a.applicationRepo.Create(ctx, &app)
		if errors.Is(err, repository.ErrApplicationDuplicate) {
			return NewServiceError(constants.ErrCodeDuplicateApplication, err)
		}
		if err != nil {
			return dbError(err)
		}

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		a.logger.Warn("Failed to submit application",
			zap.Int64("orderID", cmd.OrderID),
			zap.Int64("sellerID", cmd.SellerID),
			zap.Error(err))
		return model.OrderApplication{}, err
	}

	a.metrics.RecordApplicationSubmitted()
	a.logger.Info("Application submitted",
		zap.Int64("applicationID", app.ID),
		zap.Int64("orderID", cmd.OrderID),
		zap.Int64("sellerID", cmd.SellerID))

	return a.withSeller(ctx, app), nil
}

// WithdrawApplication lets a seller retract a pending or rejected application.
// Accepted applications are removed only through DeleteAcceptedApplication.
func (a *application) WithdrawApplication(ctx context.Context, cmd WithdrawApplicationCommand) error {
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		app, err := a.applicationRepo.GetByID(ctx, cmd.ApplicationID)
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if app.SellerID != cmd.SellerID {
			return forbidden(ErrNotApplicationOwner)
		}

		if app.Status == model.ApplicationStatusAccepted {
			return invalidState(ErrApplicationNotPending)
		}

		if err := a.applicationRepo.Delete(ctx, app.ID); err != nil {
			return dbError(err)
		}

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		a.logger.Warn("Failed to withdraw application",
			zap.Int64("applicationID", cmd.ApplicationID),
			zap.Int64("sellerID", cmd.SellerID),
			zap.Error(err))
		return err
	}

	a.logger.Info("Application withdrawn",
		zap.Int64("applicationID", cmd.ApplicationID),
		zap.Int64("sellerID", cmd.SellerID))

	return nil
}

// DecideApplication applies an admin decision to a pending application. An
// acceptance on a pending order promotes the order to progress and rejects
// every other pending application of that order in the same unit of work.
func (a *application) DecideApplication(ctx context.Context, actor Actor, cmd DecideApplicationCommand) (
	DecideApplicationResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return DecideApplicationResponse{}, err
	}

	if !cmd.Decision.Decision() {
		return DecideApplicationResponse{}, invalidInput(ErrInvalidDecision)
	}

	var resp DecideApplicationResponse
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		resp = DecideApplicationResponse{}

		// Order row first: concurrent decisions on one order queue behind its lock.
		orderID, err := a.orderIDOf(ctx, cmd.ApplicationID)
		if err != nil {
			return err
		}

		order, err := a.orderRepo.GetByID(ctx, orderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		app, err := a.applicationRepo.GetByID(ctx, cmd.ApplicationID)
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if app.Status != model.ApplicationStatusPending {
			return invalidState(ErrApplicationNotPending)
		}

		if cmd.Decision == model.ApplicationStatusAccepted {
			accepted, err := a.applicationRepo.CountByOrderAndStatus(ctx, order.ID, model.ApplicationStatusAccepted)
			if err != nil {
				return dbError(err)
			}
			if accepted > 0 {
				return invalidState(ErrOrderAlreadyAssigned)
			}
		}

		err = a.applicationRepo.UpdateStatus(ctx, app.ID, model.ApplicationStatusPending, cmd.Decision)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return invalidState(ErrApplicationNotPending)
		}
		if err != nil {
			return dbError(err)
		}

		app.Status = cmd.Decision
		app.UpdatedAt = time.Now()
		resp.OrderStatus = order.Status

		if cmd.Decision != model.ApplicationStatusAccepted || order.Status != model.OrderStatusPending {
			resp.Application = *app
			return nil
		}

		if err := a.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusProgress); err != nil {
			return dbError(err)
		}

		rejected, err := a.applicationRepo.RejectPendingSiblings(ctx, order.ID, app.ID)
		if err != nil {
			return dbError(err)
		}

		resp.Application = *app
		resp.OrderStatus = model.OrderStatusProgress
		resp.RejectedSiblings = rejected

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		a.logger.Warn("Failed to decide application",
			zap.Int64("applicationID", cmd.ApplicationID),
			zap.String("decision", string(cmd.Decision)),
			zap.Error(err))
		return DecideApplicationResponse{}, err
	}

	a.metrics.RecordApplicationDecided(string(cmd.Decision), resp.RejectedSiblings)
	if resp.Application.Status == model.ApplicationStatusAccepted && resp.OrderStatus == model.OrderStatusProgress {
		a.metrics.RecordOrderStatusChange(string(model.OrderStatusProgress), statusSourceAcceptance)
	}

	a.logger.Info("Application decided",
		zap.Int64("applicationID", cmd.ApplicationID),
		zap.Int64("orderID", resp.Application.OrderRequestID),
		zap.String("status", string(cmd.Decision)),
		zap.String("orderStatus", string(resp.OrderStatus)),
		zap.Int64("rejectedSiblings", resp.RejectedSiblings))

	resp.Application = a.withSeller(ctx, resp.Application)
	return resp, nil
}

// DeleteAcceptedApplication removes an accepted application and its work item.
// Order status and escrowed points are left as they are.
func (a *application) DeleteAcceptedApplication(ctx context.Context, actor Actor, applicationID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		app, err := a.applicationRepo.GetByID(ctx, applicationID)
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if app.Status != model.ApplicationStatusAccepted {
			return invalidState(ErrApplicationNotAccepted)
		}

		if err := a.workItemRepo.DeleteByApplicationID(ctx, app.ID); err != nil {
			return dbError(err)
		}

		if err := a.applicationRepo.Delete(ctx, app.ID); err != nil {
			return dbError(err)
		}

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		a.logger.Warn("Failed to delete accepted application",
			zap.Int64("applicationID", applicationID),
			zap.Error(err))
		return err
	}

	a.logger.Info("Accepted application deleted",
		zap.Int64("applicationID", applicationID),
		zap.Int64("actorID", actor.UserID))

	return nil
}

func (a *application) GetApplication(ctx context.Context, applicationID int64) (model.OrderApplication, error) {
	app, err := a.applicationRepo.GetWithSeller(ctx, applicationID)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return model.OrderApplication{}, notFound(err)
	}

	if err != nil {
		a.logger.Error("Failed to get application", zap.Int64("applicationID", applicationID), zap.Error(err))
		return model.OrderApplication{}, dbError(err)
	}

	return *app, nil
}

func (a *application) ListApplications(ctx context.Context, orderID int64) ([]model.OrderApplication, error) {
	if _, err := a.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, notFound(err)
		}
		return nil, dbError(err)
	}

	apps, err := a.applicationRepo.ListByOrder(ctx, orderID)
	if err != nil {
		a.logger.Error("Failed to list applications", zap.Int64("orderID", orderID), zap.Error(err))
		return nil, dbError(err)
	}

	return apps, nil
}

func (a *application) orderIDOf(ctx context.Context, applicationID int64) (int64, error) {
	app, err := a.applicationRepo.GetWithSeller(ctx, applicationID)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return 0, notFound(err)
	}
	if err != nil {
		return 0, dbError(err)
	}

	return app.OrderRequestID, nil
}

// withSeller reloads app with its seller for the response. A failed reload
// is logged and the committed row returned without the seller.
func (a *application) withSeller(ctx context.Context, app model.OrderApplication) model.OrderApplication {
	loaded, err := a.applicationRepo.GetWithSeller(ctx, app.ID)
	if err != nil {
		a.logger.Warn("Failed to load application seller",
			zap.Int64("applicationID", app.ID),
			zap.Error(err))
		return app
	}

	return *loaded
}
