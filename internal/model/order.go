package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusProgress  OrderStatus = "progress"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderRequest struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	BuyerID         int64           `gorm:"column:buyer_id;index;not null;<-:create"`
	CategoryID      int64           `gorm:"column:category_id;not null"`
	SubcategoryID   int64           `gorm:"column:subcategory_id;not null"`
	Title           string          `gorm:"column:title;type:varchar(200);not null"`
	Description     string          `gorm:"column:description;type:text"`
	DesiredQuantity int             `gorm:"column:desired_quantity;not null"`
	RequiredPoints  decimal.Decimal `gorm:"column:required_points;type:decimal(20,2);not null;<-:create"`
	Deadline        *time.Time      `gorm:"column:deadline"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(10);not null;index"`
	CreatedAt       time.Time       `gorm:"column:created_at;<-:create"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (OrderRequest) TableName() string {
	return "order_requests"
}
