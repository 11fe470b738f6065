package service

import (
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
)

type ChargeBalanceCommand struct {
	UserID      int64
	Amount      decimal.Decimal
	Type        model.PointsTxType
	Description string
}

type DebitBalanceCommand struct {
	UserID      int64
	Amount      decimal.Decimal
	Description string
}

type AdjustBalanceCommand struct {
	UserID      int64
	Amount      decimal.Decimal
	Description string
}

type ListTransactionsQuery struct {
	UserID int64
	Limit  int
	Offset int
}

type SubmitChargeRequestCommand struct {
	UserID int64
	Amount decimal.Decimal
}

type SubmitWithdrawRequestCommand struct {
	UserID     int64
	Amount     decimal.Decimal
	BankName   string
	AccountNum string
}

type DecideRequestCommand struct {
	RequestID int64
	Decision  model.RequestStatus
}

type ListRequestsQuery struct {
	Status model.RequestStatus
	Limit  int
	Offset int
}

type CreateOrderCommand struct {
	BuyerID         int64
	CategoryID      int64
	SubcategoryID   int64
	Title           string
	Description     string
	DesiredQuantity int
	RequiredPoints  decimal.Decimal
	Deadline        *time.Time
}

type TransitionOrderStatusCommand struct {
	OrderID int64
	Status  model.OrderStatus
}

type ListOrdersQuery struct {
	BuyerID int64
	Status  model.OrderStatus
	Limit   int
	Offset  int
}

type SubmitApplicationCommand struct {
	OrderID           int64
	SellerID          int64
	Message           *string
	ProposedPrice     *decimal.Decimal
	EstimatedDelivery *time.Time
}

type WithdrawApplicationCommand struct {
	ApplicationID int64
	SellerID      int64
}

type DecideApplicationCommand struct {
	ApplicationID int64
	Decision      model.ApplicationStatus
}

type SubmitWorkItemCommand struct {
	OrderID     int64
	SellerID    int64
	Description string
	FileURL     *string
	WorkLink    *string
}

type DecideWorkItemCommand struct {
	WorkItemID int64
	Decision   model.WorkItemStatus
}

type ReconcileAccountCommand struct {
	UserID int64 `json:"userId"`
}
