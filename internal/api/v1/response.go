package v1

import (
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	UserID  int64           `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

type TransactionResponse struct {
	ID          int64              `json:"id"`
	Type        model.PointsTxType `json:"type"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

type RequestCreatedResponse struct {
	RequestID int64 `json:"requestId"`
}

type ChargeRequestResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userId"`
	Amount      decimal.Decimal     `json:"amount"`
	Status      model.RequestStatus `json:"status"`
	RequestedAt time.Time           `json:"requestedAt"`
	ApprovedAt  *time.Time          `json:"approvedAt,omitempty"`
}

type WithdrawRequestResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userId"`
	Amount      decimal.Decimal     `json:"amount"`
	BankName    string              `json:"bankName"`
	AccountNum  string              `json:"accountNum"`
	Status      model.RequestStatus `json:"status"`
	RequestedAt time.Time           `json:"requestedAt"`
	ProcessedAt *time.Time          `json:"processedAt,omitempty"`
}

type OrderResponse struct {
	ID              int64             `json:"id"`
	BuyerID         int64             `json:"buyerId"`
	CategoryID      int64             `json:"categoryId"`
	SubcategoryID   int64             `json:"subcategoryId"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DesiredQuantity int               `json:"desiredQuantity"`
	RequiredPoints  decimal.Decimal   `json:"requiredPoints"`
	Deadline        *time.Time        `json:"deadline,omitempty"`
	Status          model.OrderStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type CreateOrderResponse struct {
	OrderRequestID  int64           `json:"orderRequestId"`
	Order           OrderResponse   `json:"order"`
	RemainingPoints decimal.Decimal `json:"remainingPoints"`
}

type SellerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ApplicationResponse struct {
	ID                int64                   `json:"id"`
	OrderRequestID    int64                   `json:"orderRequestId"`
	SellerID          int64                   `json:"sellerId"`
	Seller            SellerResponse          `json:"seller"`
	Message           *string                 `json:"message,omitempty"`
	ProposedPrice     *decimal.Decimal        `json:"proposedPrice,omitempty"`
	EstimatedDelivery *time.Time              `json:"estimatedDelivery,omitempty"`
	Status            model.ApplicationStatus `json:"status"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

type DecideApplicationResponse struct {
	Application      ApplicationResponse `json:"application"`
	OrderStatus      model.OrderStatus   `json:"orderStatus"`
	RejectedSiblings int64               `json:"rejectedSiblings"`
}

type WorkItemResponse struct {
	ID             int64                `json:"id"`
	OrderRequestID int64                `json:"orderRequestId"`
	ApplicationID  int64                `json:"applicationId"`
	Description    string               `json:"description"`
	FileURL        *string              `json:"fileUrl,omitempty"`
	WorkLink       *string              `json:"workLink,omitempty"`
	Status         model.WorkItemStatus `json:"status"`
	SubmittedAt    time.Time            `json:"submittedAt"`
}

func newTransactionsResponse(resp service.TransactionsResponse) TransactionsResponse {
	txs := make([]TransactionResponse, 0, len(resp.Transactions))
	for _, tx := range resp.Transactions {
		txs = append(txs, TransactionResponse{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return TransactionsResponse{Transactions: txs, Total: resp.Total}
}

func newChargeRequestResponse(req model.PointChargeRequest) ChargeRequestResponse {
	return ChargeRequestResponse{
		ID:          req.ID,
		UserID:      req.UserID,
		Amount:      req.Amount,
		Status:      req.Status,
		RequestedAt: req.RequestedAt,
		ApprovedAt:  req.ApprovedAt,
	}
}

func newWithdrawRequestResponse(req model.PointWithdrawRequest) WithdrawRequestResponse {
	return WithdrawRequestResponse{
		ID:          req.ID,
		UserID:      req.UserID,
		Amount:      req.Amount,
		BankName:    req.BankName,
		AccountNum:  req.AccountNum,
		Status:      req.Status,
		RequestedAt: req.RequestedAt,
		ProcessedAt: req.ProcessedAt,
	}
}

func newOrderResponse(order model.OrderRequest) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		BuyerID:         order.BuyerID,
		CategoryID:      order.CategoryID,
		SubcategoryID:   order.SubcategoryID,
		Title:           order.Title,
		Description:     order.Description,
		DesiredQuantity: order.DesiredQuantity,
		RequiredPoints:  order.RequiredPoints,
		Deadline:        order.Deadline,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func newApplicationResponse(app model.OrderApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:                app.ID,
		OrderRequestID:    app.OrderRequestID,
		SellerID:          app.SellerID,
		Seller:            SellerResponse{ID: app.SellerID, Name: app.Seller.Name},
		Message:           app.Message,
		ProposedPrice:     app.ProposedPrice,
		EstimatedDelivery: app.EstimatedDelivery,
		Status:            app.Status,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}
}

func newWorkItemResponse(item model.WorkItem) WorkItemResponse {
	return WorkItemResponse{
		ID:             item.ID,
		OrderRequestID: item.OrderRequestID,
		ApplicationID:  item.ApplicationID,
		Description:    item.Description,
		FileURL:        item.FileURL,
		WorkLink:       item.WorkLink,
		Status:         item.Status,
		SubmittedAt:    item.SubmittedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
