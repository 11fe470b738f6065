package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PointsTxType string

const (
	PointsTxCharge      PointsTxType = "charge"
	PointsTxSpend       PointsTxType = "spend"
	PointsTxWithdraw    PointsTxType = "withdraw"
	PointsTxAdminAdjust PointsTxType = "admin_adjust"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Decision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

type PointsAccount struct {
	ID                int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID            int64           `gorm:"column:user_id;uniqueIndex;not null;<-:create"`
	Balance           decimal.Decimal `gorm:"column:balance;type:decimal(20,2);not null;default:0"`
	ReconcileQueuedAt *time.Time      `gorm:"column:reconcile_queued_at"`
	ReconciledAt      *time.Time      `gorm:"column:reconciled_at"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (PointsAccount) TableName() string {
	return "points_accounts"
}

// PointsTransaction is append-only; Amount is signed (inflow positive).
type PointsTransaction struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID      int64           `gorm:"column:user_id;index;not null;<-:create"`
	Type        PointsTxType    `gorm:"column:type;type:varchar(20);not null;<-:create"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null;<-:create"`
	Description string          `gorm:"column:description;type:varchar(255);<-:create"`
	CreatedAt   time.Time       `gorm:"column:created_at;<-:create"`
}

func (PointsTransaction) TableName() string {
	return "points_transactions"
}

type PointChargeRequest struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID      int64           `gorm:"column:user_id;index;not null;<-:create"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null;<-:create"`
	Status      RequestStatus   `gorm:"column:status;type:varchar(10);not null;index"`
	RequestedAt time.Time       `gorm:"column:requested_at;<-:create"`
	ApprovedAt  *time.Time      `gorm:"column:approved_at"`
}

func (PointChargeRequest) TableName() string {
	return "point_charge_requests"
}

type PointWithdrawRequest struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID      int64           `gorm:"column:user_id;index;not null;<-:create"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null;<-:create"`
	BankName    string          `gorm:"column:bank_name;type:varchar(100);not null;<-:create"`
	AccountNum  string          `gorm:"column:account_num;type:varchar(50);not null;<-:create"`
	Status      RequestStatus   `gorm:"column:status;type:varchar(10);not null;index"`
	RequestedAt time.Time       `gorm:"column:requested_at;<-:create"`
	ProcessedAt *time.Time      `gorm:"column:processed_at"`
}

func (PointWithdrawRequest) TableName() string {
	return "point_withdraw_requests"
}
