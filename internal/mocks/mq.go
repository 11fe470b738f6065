package mocks

import (
	"context"

	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

// Consumer hands every body in Deliveries to the handler and records the
// handler results in Results.
type Consumer struct {
	mock.Mock
	Deliveries [][]byte
	Results    []error
}

func (m *Consumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	args := m.Called(ctx, prefetch, queue)
	for _, body := range m.Deliveries {
		m.Results = append(m.Results, handler(ctx, body))
	}
	return args.Error(0)
}
