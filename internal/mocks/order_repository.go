package mocks

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *model.OrderRequest) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id int64) (*model.OrderRequest, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*model.OrderRequest)
	return order, args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *OrderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) (
	[]model.OrderRequest, error) {
	args := m.Called(ctx, filter, limit, offset)
	orders, _ := args.Get(0).([]model.OrderRequest)
	return orders, args.Error(1)
}

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *model.OrderApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id int64) (*model.OrderApplication, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*model.OrderApplication)
	return app, args.Error(1)
}

func (m *ApplicationRepository) GetWithSeller(ctx context.Context, id int64) (*model.OrderApplication, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*model.OrderApplication)
	return app, args.Error(1)
}

func (m *ApplicationRepository) FindByOrderAndSeller(ctx context.Context, orderID, sellerID int64) (
	*model.OrderApplication, error) {
	args := m.Called(ctx, orderID, sellerID)
	app, _ := args.Get(0).(*model.OrderApplication)
	return app, args.Error(1)
}

func (m *ApplicationRepository) CountByOrderAndStatus(ctx context.Context, orderID int64,
	status model.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, from, to model.ApplicationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *ApplicationRepository) RejectPendingSiblings(ctx context.Context, orderID, exceptID int64) (int64, error) {
	args := m.Called(ctx, orderID, exceptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicationRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderApplication, error) {
	args := m.Called(ctx, orderID)
	apps, _ := args.Get(0).([]model.OrderApplication)
	return apps, args.Error(1)
}

type WorkItemRepository struct {
	mock.Mock
}

func (m *WorkItemRepository) Create(ctx context.Context, item *model.WorkItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *WorkItemRepository) GetByID(ctx context.Context, id int64) (*model.WorkItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*model.WorkItem)
	return item, args.Error(1)
}

func (m *WorkItemRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*model.WorkItem, error) {
	args := m.Called(ctx, applicationID)
	item, _ := args.Get(0).(*model.WorkItem)
	return item, args.Error(1)
}

func (m *WorkItemRepository) Resubmit(ctx context.Context, item *model.WorkItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *WorkItemRepository) UpdateStatus(ctx context.Context, id int64, status model.WorkItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *WorkItemRepository) DeleteByApplicationID(ctx context.Context, applicationID int64) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}
