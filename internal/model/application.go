package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Decision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

type OrderApplication struct {
	ID                int64             `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	OrderRequestID    int64             `gorm:"column:order_request_id;not null;uniqueIndex:idx_order_seller;<-:create"`
	SellerID          int64             `gorm:"column:seller_id;not null;uniqueIndex:idx_order_seller;<-:create"`
	Message           *string           `gorm:"column:message;type:text"`
	ProposedPrice     *decimal.Decimal  `gorm:"column:proposed_price;type:decimal(20,2)"`
	EstimatedDelivery *time.Time        `gorm:"column:estimated_delivery"`
	Status            ApplicationStatus `gorm:"column:status;type:varchar(10);not null;index"`
	CreatedAt         time.Time         `gorm:"column:created_at;<-:create"`
	UpdatedAt         time.Time         `gorm:"column:updated_at"`

	OrderRequest OrderRequest `gorm:"foreignKey:OrderRequestID"`
	Seller       User         `gorm:"foreignKey:SellerID"`
}

func (OrderApplication) TableName() string {
	return "order_applications"
}
