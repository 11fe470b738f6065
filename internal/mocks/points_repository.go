package mocks

import (
	"context"
	"time"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type PointsAccountRepository struct {
	mock.Mock
}

func (m *PointsAccountRepository) Create(ctx context.Context, account *model.PointsAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *PointsAccountRepository) GetByUserID(ctx context.Context, userID int64) (*model.PointsAccount, error) {
	args := m.Called(ctx, userID)
	account, _ := args.Get(0).(*model.PointsAccount)
	return account, args.Error(1)
}

func (m *PointsAccountRepository) IncreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *PointsAccountRepository) DecreaseBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *PointsAccountRepository) FindToReconcile(ctx context.Context, limit int) ([]model.PointsAccount, error) {
	args := m.Called(ctx, limit)
	accounts, _ := args.Get(0).([]model.PointsAccount)
	return accounts, args.Error(1)
}

func (m *PointsAccountRepository) MarkReconcileQueued(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *PointsAccountRepository) MarkReconciled(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

type PointsTransactionRepository struct {
	mock.Mock
}

func (m *PointsTransactionRepository) Create(ctx context.Context, tx *model.PointsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *PointsTransactionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) (
	[]model.PointsTransaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	transactions, _ := args.Get(0).([]model.PointsTransaction)
	return transactions, args.Error(1)
}

func (m *PointsTransactionRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PointsTransactionRepository) SumByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type ChargeRequestRepository struct {
	mock.Mock
}

func (m *ChargeRequestRepository) Create(ctx context.Context, req *model.PointChargeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *ChargeRequestRepository) GetByID(ctx context.Context, id int64) (*model.PointChargeRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*model.PointChargeRequest)
	return req, args.Error(1)
}

func (m *ChargeRequestRepository) Decide(ctx context.Context, id int64, status model.RequestStatus,
	approvedAt *time.Time) error {
	args := m.Called(ctx, id, status, approvedAt)
	return args.Error(0)
}

func (m *ChargeRequestRepository) ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) (
	[]model.PointChargeRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	requests, _ := args.Get(0).([]model.PointChargeRequest)
	return requests, args.Error(1)
}

type WithdrawRequestRepository struct {
	mock.Mock
}

func (m *WithdrawRequestRepository) Create(ctx context.Context, req *model.PointWithdrawRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *WithdrawRequestRepository) GetByID(ctx context.Context, id int64) (*model.PointWithdrawRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*model.PointWithdrawRequest)
	return req, args.Error(1)
}

func (m *WithdrawRequestRepository) Decide(ctx context.Context, id int64, status model.RequestStatus,
	processedAt time.Time) error {
	args := m.Called(ctx, id, status, processedAt)
	return args.Error(0)
}

func (m *WithdrawRequestRepository) ListByStatus(ctx context.Context, status model.RequestStatus, limit, offset int) (
	[]model.PointWithdrawRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	requests, _ := args.Get(0).([]model.PointWithdrawRequest)
	return requests, args.Error(1)
}
