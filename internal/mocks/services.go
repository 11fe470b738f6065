package mocks

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type PointsService struct {
	mock.Mock
}

func (m *PointsService) ChargeBalance(ctx context.Context, cmd service.ChargeBalanceCommand) (decimal.Decimal, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *PointsService) DebitBalance(ctx context.Context, cmd service.DebitBalanceCommand) (decimal.Decimal, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *PointsService) AdjustBalance(ctx context.Context, actor service.Actor, cmd service.AdjustBalanceCommand) (
	decimal.Decimal, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *PointsService) GetBalance(ctx context.Context, userID int64) (service.BalanceResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.BalanceResponse), args.Error(1)
}

func (m *PointsService) ListTransactions(ctx context.Context, query service.ListTransactionsQuery) (
	service.TransactionsResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.TransactionsResponse), args.Error(1)
}

func (m *PointsService) SubmitChargeRequest(ctx context.Context, cmd service.SubmitChargeRequestCommand) (
	model.PointChargeRequest, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.PointChargeRequest), args.Error(1)
}

func (m *PointsService) DecideChargeRequest(ctx context.Context, actor service.Actor,
	cmd service.DecideRequestCommand) (model.PointChargeRequest, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(model.PointChargeRequest), args.Error(1)
}

func (m *PointsService) ListChargeRequests(ctx context.Context, actor service.Actor,
	query service.ListRequestsQuery) ([]model.PointChargeRequest, error) {
	args := m.Called(ctx, actor, query)
	requests, _ := args.Get(0).([]model.PointChargeRequest)
	return requests, args.Error(1)
}

func (m *PointsService) SubmitWithdrawRequest(ctx context.Context, cmd service.SubmitWithdrawRequestCommand) (
	model.PointWithdrawRequest, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.PointWithdrawRequest), args.Error(1)
}

func (m *PointsService) DecideWithdrawRequest(ctx context.Context, actor service.Actor,
	cmd service.DecideRequestCommand) (model.PointWithdrawRequest, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(model.PointWithdrawRequest), args.Error(1)
}

func (m *PointsService) ListWithdrawRequests(ctx context.Context, actor service.Actor,
	query service.ListRequestsQuery) ([]model.PointWithdrawRequest, error) {
	args := m.Called(ctx, actor, query)
	requests, _ := args.Get(0).([]model.PointWithdrawRequest)
	return requests, args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) CreateOrder(ctx context.Context, cmd service.CreateOrderCommand) (
	service.CreateOrderResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CreateOrderResponse), args.Error(1)
}

func (m *OrderService) TransitionOrderStatus(ctx context.Context, actor service.Actor,
	cmd service.TransitionOrderStatusCommand) (model.OrderRequest, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(model.OrderRequest), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, orderID int64) (model.OrderRequest, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.OrderRequest), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, query service.ListOrdersQuery) ([]model.OrderRequest, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]model.OrderRequest)
	return orders, args.Error(1)
}

type ApplicationService struct {
	mock.Mock
}

func (m *ApplicationService) SubmitApplication(ctx context.Context, cmd service.SubmitApplicationCommand) (
	model.OrderApplication, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.OrderApplication), args.Error(1)
}

func (m *ApplicationService) WithdrawApplication(ctx context.Context, cmd service.WithdrawApplicationCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *ApplicationService) DecideApplication(ctx context.Context, actor service.Actor,
	cmd service.DecideApplicationCommand) (service.DecideApplicationResponse, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(service.DecideApplicationResponse), args.Error(1)
}

func (m *ApplicationService) DeleteAcceptedApplication(ctx context.Context, actor service.Actor,
	applicationID int64) error {
	args := m.Called(ctx, actor, applicationID)
	return args.Error(0)
}

func (m *ApplicationService) GetApplication(ctx context.Context, applicationID int64) (model.OrderApplication, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).(model.OrderApplication), args.Error(1)
}

func (m *ApplicationService) ListApplications(ctx context.Context, orderID int64) ([]model.OrderApplication, error) {
	args := m.Called(ctx, orderID)
	apps, _ := args.Get(0).([]model.OrderApplication)
	return apps, args.Error(1)
}

type WorkItemService struct {
	mock.Mock
}

func (m *WorkItemService) SubmitWorkItem(ctx context.Context, cmd service.SubmitWorkItemCommand) (
	model.WorkItem, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.WorkItem), args.Error(1)
}

func (m *WorkItemService) DecideWorkItemStatus(ctx context.Context, actor service.Actor,
	cmd service.DecideWorkItemCommand) (model.WorkItem, error) {
	args := m.Called(ctx, actor, cmd)
	return args.Get(0).(model.WorkItem), args.Error(1)
}

func (m *WorkItemService) GetWorkItem(ctx context.Context, applicationID int64) (model.WorkItem, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).(model.WorkItem), args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) ResolveActor(ctx context.Context, userID int64) (service.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.Actor), args.Error(1)
}

type ReconcileQueueService struct {
	mock.Mock
}

func (m *ReconcileQueueService) FindAccountsToQueue(ctx context.Context, limit int) (
	[]service.ReconcileAccountCommand, error) {
	args := m.Called(ctx, limit)
	commands, _ := args.Get(0).([]service.ReconcileAccountCommand)
	return commands, args.Error(1)
}

func (m *ReconcileQueueService) MarkAccountAsQueued(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ReconcileService struct {
	mock.Mock
}

func (m *ReconcileService) Reconcile(ctx context.Context, cmd service.ReconcileAccountCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
