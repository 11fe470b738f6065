package service

import (
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	UserID  int64
	Balance decimal.Decimal
}

type TransactionsResponse struct {
	Transactions []model.PointsTransaction
	Total        int64
}

type CreateOrderResponse struct {
	Order           model.OrderRequest
	RemainingPoints decimal.Decimal
}

// DecideApplicationResponse reports the cascade an acceptance triggered, if any.
type DecideApplicationResponse struct {
	Application      model.OrderApplication
	OrderStatus      model.OrderStatus
	RejectedSiblings int64
}
