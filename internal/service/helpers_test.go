package service_test

import (
	"testing"

	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	admin  = service.Actor{UserID: 1, Role: model.RoleAdmin}
	buyer  = service.Actor{UserID: 10, Role: model.RoleBuyer}
	seller = service.Actor{UserID: 20, Role: model.RoleSeller}
)

func txCtx() any {
	return mock.AnythingOfType("*context.valueCtx")
}

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func points(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalEq(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var serviceErr service.Error
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, code, serviceErr.Code)
}
