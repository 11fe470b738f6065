package service_test

import (
	"context"
	"testing"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/mocks"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type applicationFixture struct {
	orderRepo       *mocks.OrderRepository
	applicationRepo *mocks.ApplicationRepository
	workItemRepo    *mocks.WorkItemRepository
	txManager       *mocks.TxManager
	svc             service.ApplicationService
}

func newApplicationFixture() applicationFixture {
	f := applicationFixture{
		orderRepo:       &mocks.OrderRepository{},
		applicationRepo: &mocks.ApplicationRepository{},
		workItemRepo:    &mocks.WorkItemRepository{},
		txManager:       &mocks.TxManager{},
	}

	f.svc = service.NewApplicationService(f.orderRepo, f.applicationRepo, f.workItemRepo, f.txManager,
		newMetrics(), zap.NewNop())
	f.txManager.On("WithTx", mock.Anything, mock.AnythingOfType("func(context.Context) error")).Return(nil)

	return f
}

func TestApplication_SubmitApplication(t *testing.T) {
	ctx := context.Background()
	cmd := service.SubmitApplicationCommand{OrderID: 99, SellerID: 20}

	t.Run("inserts pending application", func(t *testing.T) {
		f := newApplicationFixture()

		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("FindByOrderAndSeller", txCtx(), int64(99), int64(20)).
			Return(nil, repository.ErrApplicationNotFound)
		f.applicationRepo.On("Create", txCtx(), mock.MatchedBy(func(app *model.OrderApplication) bool {
			return app.OrderRequestID == 99 && app.SellerID == 20 && app.Status == model.ApplicationStatusPending
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.OrderApplication).ID = 5
		}).Return(nil)
		f.applicationRepo.On("GetWithSeller", ctx, int64(5)).Return(&model.OrderApplication{
			ID: 5, OrderRequestID: 99, SellerID: 20, Status: model.ApplicationStatusPending,
			Seller: model.User{ID: 20, Name: "Kim"},
		}, nil)

		app, err := f.svc.SubmitApplication(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(5), app.ID)
		assert.Equal(t, "Kim", app.Seller.Name)
		f.applicationRepo.AssertExpectations(t)
	})

	t.Run("order not accepting applications", func(t *testing.T) {
		f := newApplicationFixture()

		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusProgress}, nil)

		_, err := f.svc.SubmitApplication(ctx, cmd)

		assertCode(t, err, constants.ErrCodeInvalidState)
		assert.ErrorIs(t, err, service.ErrOrderNotAccepting)
		f.applicationRepo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate application", func(t *testing.T) {
		f := newApplicationFixture()

		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("FindByOrderAndSeller", txCtx(), int64(99), int64(20)).
			Return(&model.OrderApplication{ID: 4, Status: model.ApplicationStatusPending}, nil)

		_, err := f.svc.SubmitApplication(ctx, cmd)

		assertCode(t, err, constants.ErrCodeDuplicateApplication)
		f.applicationRepo.AssertNotCalled(t, "Create")
	})

	t.Run("unique index race is a duplicate", func(t *testing.T) {
		f := newApplicationFixture()

		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("FindByOrderAndSeller", txCtx(), int64(99), int64(20)).
			Return(nil, repository.ErrApplicationNotFound)
		f.applicationRepo.On("Create", txCtx(), mock.AnythingOfType("*model.OrderApplication")).
			Return(repository.ErrApplicationDuplicate)

		_, err := f.svc.SubmitApplication(ctx, cmd)

		assertCode(t, err, constants.ErrCodeDuplicateApplication)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newApplicationFixture()

		f.orderRepo.On("GetByID", txCtx(), int64(99)).Return(nil, repository.ErrOrderNotFound)

		_, err := f.svc.SubmitApplication(ctx, cmd)

		assertCode(t, err, constants.ErrCodeNotFound)
	})
}

func TestApplication_WithdrawApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes application", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetByID", txCtx(), int64(5)).
			Return(&model.OrderApplication{ID: 5, SellerID: 20, Status: model.ApplicationStatusPending}, nil)
		f.applicationRepo.On("Delete", txCtx(), int64(5)).Return(nil)

		err := f.svc.WithdrawApplication(ctx, service.WithdrawApplicationCommand{ApplicationID: 5, SellerID: 20})

		require.NoError(t, err)
		f.applicationRepo.AssertExpectations(t)
		f.orderRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("other seller is forbidden", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetByID", txCtx(), int64(5)).
			Return(&model.OrderApplication{ID: 5, SellerID: 21, Status: model.ApplicationStatusPending}, nil)

		err := f.svc.WithdrawApplication(ctx, service.WithdrawApplicationCommand{ApplicationID: 5, SellerID: 20})

		assertCode(t, err, constants.ErrCodeForbidden)
		f.applicationRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("accepted application cannot be withdrawn", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetByID", txCtx(), int64(5)).
			Return(&model.OrderApplication{ID: 5, SellerID: 20, Status: model.ApplicationStatusAccepted}, nil)

		err := f.svc.WithdrawApplication(ctx, service.WithdrawApplicationCommand{ApplicationID: 5, SellerID: 20})

		assertCode(t, err, constants.ErrCodeInvalidState)
	})
}

func TestApplication_DecideApplication(t *testing.T) {
	ctx := context.Background()
	accept := service.DecideApplicationCommand{ApplicationID: 5, Decision: model.ApplicationStatusAccepted}

	pendingApp := func() *model.OrderApplication {
		return &model.OrderApplication{ID: 5, OrderRequestID: 99, SellerID: 20, Status: model.ApplicationStatusPending}
	}

	t.Run("acceptance on pending order cascades", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetWithSeller", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("GetByID", txCtx(), int64(5)).Return(pendingApp(), nil)
		f.applicationRepo.On("CountByOrderAndStatus", txCtx(), int64(99), model.ApplicationStatusAccepted).
			Return(int64(0), nil)
		f.applicationRepo.On("UpdateStatus", txCtx(), int64(5), model.ApplicationStatusPending,
			model.ApplicationStatusAccepted).Return(nil)
		f.orderRepo.On("UpdateStatus", txCtx(), int64(99), model.OrderStatusProgress).Return(nil)
		f.applicationRepo.On("RejectPendingSiblings", txCtx(), int64(99), int64(5)).Return(int64(2), nil)

		resp, err := f.svc.DecideApplication(ctx, admin, accept)

		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusProgress, resp.OrderStatus)
		assert.Equal(t, int64(2), resp.RejectedSiblings)
		f.orderRepo.AssertExpectations(t)
		f.applicationRepo.AssertExpectations(t)
	})

	t.Run("acceptance on non-pending order skips cascade", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetWithSeller", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusCompleted}, nil)
		f.applicationRepo.On("GetByID", txCtx(), int64(5)).Return(pendingApp(), nil)
		f.applicationRepo.On("CountByOrderAndStatus", txCtx(), int64(99), model.ApplicationStatusAccepted).
			Return(int64(0), nil)
		f.applicationRepo.On("UpdateStatus", txCtx(), int64(5), model.ApplicationStatusPending,
			model.ApplicationStatusAccepted).Return(nil)

		resp, err := f.svc.DecideApplication(ctx, admin, accept)

		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCompleted, resp.OrderStatus)
		assert.Zero(t, resp.RejectedSiblings)
		f.orderRepo.AssertNotCalled(t, "UpdateStatus")
		f.applicationRepo.AssertNotCalled(t, "RejectPendingSiblings")
	})

	t.Run("rejection never cascades", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetWithSeller", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("GetByID", txCtx(), int64(5)).Return(pendingApp(), nil)
		f.applicationRepo.On("UpdateStatus", txCtx(), int64(5), model.ApplicationStatusPending,
			model.ApplicationStatusRejected).Return(nil)

		resp, err := f.svc.DecideApplication(ctx, admin,
			service.DecideApplicationCommand{ApplicationID: 5, Decision: model.ApplicationStatusRejected})

		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, resp.OrderStatus)
		f.applicationRepo.AssertNotCalled(t, "CountByOrderAndStatus")
		f.orderRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("non-pending application is invalid state", func(t *testing.T) {
		f := newApplicationFixture()

		rejected := pendingApp()
		rejected.Status = model.ApplicationStatusRejected
		f.applicationRepo.On("GetWithSeller", mock.Anything, int64(5)).Return(rejected, nil)
		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusProgress}, nil)
		f.applicationRepo.On("GetByID", txCtx(), int64(5)).Return(rejected, nil)

		_, err := f.svc.DecideApplication(ctx, admin, accept)

		assertCode(t, err, constants.ErrCodeInvalidState)
		assert.ErrorIs(t, err, service.ErrApplicationNotPending)
		f.applicationRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("second acceptance on an order is invalid state", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetWithSeller", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.orderRepo.On("GetByID", txCtx(), int64(99)).
			Return(&model.OrderRequest{ID: 99, Status: model.OrderStatusPending}, nil)
		f.applicationRepo.On("GetByID", txCtx(), int64(5)).Return(pendingApp(), nil)
		f.applicationRepo.On("CountByOrderAndStatus", txCtx(), int64(99), model.ApplicationStatusAccepted).
			Return(int64(1), nil)

		_, err := f.svc.DecideApplication(ctx, admin, accept)

		assertCode(t, err, constants.ErrCodeInvalidState)
		assert.ErrorIs(t, err, service.ErrOrderAlreadyAssigned)
	})

	t.Run("requires admin and a known decision", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.svc.DecideApplication(ctx, buyer, accept)
		assertCode(t, err, constants.ErrCodeForbidden)

		_, err = f.svc.DecideApplication(ctx, admin,
			service.DecideApplicationCommand{ApplicationID: 5, Decision: model.ApplicationStatusPending})
		assertCode(t, err, constants.ErrCodeValidationFailed)

		f.txManager.AssertNotCalled(t, "WithTx")
	})

	t.Run("missing application", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetWithSeller", txCtx(), int64(5)).Return(nil, repository.ErrApplicationNotFound)

		_, err := f.svc.DecideApplication(ctx, admin, accept)

		assertCode(t, err, constants.ErrCodeNotFound)
	})
}

func TestApplication_DeleteAcceptedApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes accepted application and its work item", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetByID", txCtx(), int64(5)).
			Return(&model.OrderApplication{ID: 5, Status: model.ApplicationStatusAccepted}, nil)
		f.workItemRepo.On("DeleteByApplicationID", txCtx(), int64(5)).Return(nil)
		f.applicationRepo.On("Delete", txCtx(), int64(5)).Return(nil)

		err := f.svc.DeleteAcceptedApplication(ctx, admin, 5)

		require.NoError(t, err)
		f.workItemRepo.AssertExpectations(t)
		f.applicationRepo.AssertExpectations(t)
	})

	t.Run("only accepted applications", func(t *testing.T) {
		f := newApplicationFixture()

		f.applicationRepo.On("GetByID", txCtx(), int64(5)).
			Return(&model.OrderApplication{ID: 5, Status: model.ApplicationStatusPending}, nil)

		err := f.svc.DeleteAcceptedApplication(ctx, admin, 5)

		assertCode(t, err, constants.ErrCodeInvalidState)
		f.applicationRepo.AssertNotCalled(t, "Delete")
	})
}
