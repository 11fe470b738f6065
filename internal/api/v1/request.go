package v1

import (
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
)

type PageQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type ListRequestsQuery struct {
	Status model.RequestStatus `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	PageQuery
}

type ListOrdersQuery struct {
	Status model.OrderStatus `query:"status" validate:"omitempty,oneof=pending progress completed cancelled"`
	PageQuery
}

type ChargeRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,amount"`
}

type WithdrawRequest struct {
	Amount     decimal.Decimal `json:"amount" validate:"required,amount"`
	BankName   string          `json:"bankName" validate:"required,max=100"`
	AccountNum string          `json:"accountNum" validate:"required,max=50"`
}

type DecideRequest struct {
	Status model.RequestStatus `json:"status" validate:"required,oneof=approved rejected"`
}

type AdjustBalanceRequest struct {
	UserID      int64           `json:"userId" validate:"required,min=1"`
	Amount      decimal.Decimal `json:"amount" validate:"required,amount"`
	Description string          `json:"description" validate:"max=255"`
}

type CreateOrderRequest struct {
	CategoryID      int64           `json:"categoryId" validate:"required,min=1"`
	SubcategoryID   int64           `json:"subcategoryId" validate:"required,min=1"`
	Title           string          `json:"title" validate:"required,max=200"`
	Description     string          `json:"description"`
	DesiredQuantity int             `json:"desiredQuantity" validate:"required,min=1"`
	RequiredPoints  decimal.Decimal `json:"requiredPoints" validate:"required,amount"`
	Deadline        *time.Time      `json:"deadline"`
}

type TransitionOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=pending progress completed cancelled"`
}

type SubmitApplicationRequest struct {
	Message           *string          `json:"message"`
	ProposedPrice     *decimal.Decimal `json:"proposedPrice" validate:"omitempty,amount"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
}

type DecideApplicationRequest struct {
	Status model.ApplicationStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

type SubmitWorkItemRequest struct {
	Description string  `json:"description" validate:"required"`
	FileURL     *string `json:"fileUrl" validate:"omitempty,url,max=500"`
	WorkLink    *string `json:"workLink" validate:"omitempty,url,max=500"`
}

type DecideWorkItemRequest struct {
	Status model.WorkItemStatus `json:"status" validate:"required,oneof=approved rejected"`
}
