package publishers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/mocks"
	"github.com/YJ-0220/product-sub000/internal/publishers"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cfg = &config.Config{Reconcile: config.Reconcile{Queue: "points.reconcile", BatchSize: 50}}

func TestReconcilePublisher_Publish(t *testing.T) {
	ctx := context.Background()
	queue := &mocks.ReconcileQueueService{}
	publisher := &mocks.Publisher{}

	queue.On("FindAccountsToQueue", ctx, 50).Return([]service.ReconcileAccountCommand{
		{UserID: 10}, {UserID: 20}, {UserID: 30},
	}, nil)
	publisher.On("Publish", ctx, "", "points.reconcile", []byte(`{"userId":10}`)).Return(nil)
	publisher.On("Publish", ctx, "", "points.reconcile", []byte(`{"userId":20}`)).Return(errors.New("channel closed"))
	publisher.On("Publish", ctx, "", "points.reconcile", []byte(`{"userId":30}`)).Return(nil)
	queue.On("MarkAccountAsQueued", ctx, int64(10)).Return(nil)
	queue.On("MarkAccountAsQueued", ctx, int64(30)).Return(errors.New("deadlock"))

	published, err := publishers.NewReconcilePublisher(cfg, queue, publisher, zap.NewNop()).Publish(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, published)
	queue.AssertNotCalled(t, "MarkAccountAsQueued", ctx, int64(20))
	publisher.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestReconcilePublisher_NothingDue(t *testing.T) {
	ctx := context.Background()
	queue := &mocks.ReconcileQueueService{}
	publisher := &mocks.Publisher{}
	queue.On("FindAccountsToQueue", ctx, 50).Return(nil, nil)

	published, err := publishers.NewReconcilePublisher(cfg, queue, publisher, zap.NewNop()).Publish(ctx)

	require.NoError(t, err)
	assert.Zero(t, published)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePublisher_FindFails(t *testing.T) {
	ctx := context.Background()
	queue := &mocks.ReconcileQueueService{}
	queue.On("FindAccountsToQueue", ctx, 50).Return(nil, assert.AnError)

	_, err := publishers.NewReconcilePublisher(cfg, queue, &mocks.Publisher{}, zap.NewNop()).Publish(ctx)

	assert.ErrorIs(t, err, assert.AnError)
}
