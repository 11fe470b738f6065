package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	statusSourceAdmin      = "admin"
	statusSourceAcceptance = "acceptance"
)

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error)
	TransitionOrderStatus(ctx context.Context, actor Actor, cmd TransitionOrderStatusCommand) (model.OrderRequest, error)
	GetOrder(ctx context.Context, orderID int64) (model.OrderRequest, error)
	ListOrders(ctx context.Context, query ListOrdersQuery) ([]model.OrderRequest, error)
}

type order struct {
	ledger    *Ledger
	orderRepo repository.OrderRepository
	txManager repository.TxManager
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewOrderService(ledger *Ledger, orderRepo repository.OrderRepository, txManager repository.TxManager,
	metrics *metrics.Metrics, logger *zap.Logger) OrderService {
	return &order{ledger: ledger, orderRepo: orderRepo, txManager: txManager, metrics: metrics, logger: logger}
}

// CreateOrder escrows the required points and inserts the order in one unit
// of work; neither is visible without the other.
func (o *order) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := validateAmount(cmd.RequiredPoints); err != nil {
		return CreateOrderResponse{}, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" || cmd.DesiredQuantity <= 0 {
		return CreateOrderResponse{}, invalidInput(ErrMissingField)
	}

	var resp CreateOrderResponse
	err := o.txManager.WithTx(ctx, func(ctx context.Context) error {
		remaining, err := o.ledger.Debit(ctx, cmd.BuyerID, cmd.RequiredPoints, model.PointsTxSpend,
			"order request: "+title)
		if err != nil {
			return err
		}

		now := time.Now()
		order := model.OrderRequest{
			BuyerID:         cmd.BuyerID,
			CategoryID:      cmd.CategoryID,
			SubcategoryID:   cmd.SubcategoryID,
			Title:           title,
			Description:     cmd.Description,
			DesiredQuantity: cmd.DesiredQuantity,
			RequiredPoints:  cmd.RequiredPoints,
			Deadline:        cmd.Deadline,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := o.orderRepo.Create(ctx, &order); err != nil {
			return dbError(err)
		}

		resp = CreateOrderResponse{Order: order, RemainingPoints: remaining}
		return nil
	})
	if err != nil {
		err = fromTxError(err)
		o.metrics.RecordPointsMutationError(string(model.PointsTxSpend), errorType(err))
		o.logger.Warn("Failed to create order",
			zap.Int64("buyerID", cmd.BuyerID),
			zap.String("requiredPoints", cmd.RequiredPoints.String()),
			zap.Error(err))
		return CreateOrderResponse{}, err
	}

	o.metrics.RecordOrderCreated()
	o.metrics.RecordPointsMutation(string(model.PointsTxSpend))
	o.logger.Info("Order created",
		zap.Int64("orderID", resp.Order.ID),
		zap.Int64("buyerID", cmd.BuyerID),
		zap.String("remainingPoints", resp.RemainingPoints.String()))

	return resp, nil
}

// TransitionOrderStatus is an admin override: any status of the closed set may
// follow any other.
func (o *order) TransitionOrderStatus(ctx context.Context, actor Actor, cmd TransitionOrderStatusCommand) (
	model.OrderRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return model.OrderRequest{}, err
	}

	if !cmd.Status.Valid() {
		return model.OrderRequest{}, invalidInput(ErrInvalidOrderStatus)
	}

	var updated model.OrderRequest
	changed := false
	err := o.txManager.WithTx(ctx, func(ctx context.Context) error {
		order, err := o.orderRepo.GetByID(ctx, cmd.OrderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if order.Status == cmd.Status {
			updated = *order
			return nil
		}

		if err := o.orderRepo.UpdateStatus(ctx, order.ID, cmd.Status); err != nil {
			return dbError(err)
		}

		order.Status = cmd.Status
		order.UpdatedAt = time.Now()
		updated = *order
		changed = true

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		o.logger.Warn("Failed to transition order status",
			zap.Int64("orderID", cmd.OrderID),
			zap.String("status", string(cmd.Status)),
			zap.Error(err))
		return model.OrderRequest{}, err
	}

	if changed {
		o.metrics.RecordOrderStatusChange(string(cmd.Status), statusSourceAdmin)
		o.logger.Info("Order status changed",
			zap.Int64("orderID", cmd.OrderID),
			zap.Int64("actorID", actor.UserID),
			zap.String("status", string(cmd.Status)))
	}

	return updated, nil
}

func (o *order) GetOrder(ctx context.Context, orderID int64) (model.OrderRequest, error) {
	order, err := o.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return model.OrderRequest{}, notFound(err)
	}

	if err != nil {
		o.logger.Error("Failed to get order", zap.Int64("orderID", orderID), zap.Error(err))
		return model.OrderRequest{}, dbError(err)
	}

	return *order, nil
}

func (o *order) ListOrders(ctx context.Context, query ListOrdersQuery) ([]model.OrderRequest, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, invalidInput(ErrInvalidOrderStatus)
	}

	filter := repository.OrderFilter{BuyerID: query.BuyerID, Status: query.Status}
	orders, err := o.orderRepo.List(ctx, filter, pageSize(query.Limit), pageOffset(query.Offset))
	if err != nil {
		o.logger.Error("Failed to list orders", zap.Error(err))
		return nil, dbError(err)
	}

	return orders, nil
}
