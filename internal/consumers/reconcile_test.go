package consumers_test

import (
	"context"
	"testing"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/consumers"
	"github.com/YJ-0220/product-sub000/internal/mocks"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReconcileConsumer_Consume(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Reconcile: config.Reconcile{Queue: "points.reconcile", Prefetch: 4}}

	reconciler := &mocks.ReconcileService{}
	reconciler.On("Reconcile", ctx, service.ReconcileAccountCommand{UserID: 10}).Return(nil)
	reconciler.On("Reconcile", ctx, service.ReconcileAccountCommand{UserID: 20}).Return(mq.Temporary(assert.AnError))

	consumer := &mocks.Consumer{Deliveries: [][]byte{
		[]byte(`{"userId":10}`),
		[]byte(`{"userId":20}`),
		[]byte(`not json`),
		[]byte(`{}`),
	}}
	consumer.On("Consume", ctx, 4, "points.reconcile").Return(nil)

	err := consumers.NewReconcileConsumer(cfg, reconciler, consumer, zap.NewNop()).Consume(ctx)

	require.NoError(t, err)
	require.Len(t, consumer.Results, 4)

	assert.NoError(t, consumer.Results[0])
	assert.True(t, mq.ShouldRequeue(consumer.Results[1]), "storage failures are redelivered")

	assert.ErrorIs(t, consumer.Results[2], consumers.ErrInvalidCommand)
	assert.False(t, mq.ShouldRequeue(consumer.Results[2]), "malformed bodies are dead-lettered")
	assert.ErrorIs(t, consumer.Results[3], consumers.ErrInvalidCommand)

	reconciler.AssertNumberOfCalls(t, "Reconcile", 2)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, service.ReconcileAccountCommand{})
}
