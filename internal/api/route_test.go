package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/YJ-0220/product-sub000/internal/api"
	"github.com/YJ-0220/product-sub000/internal/api/middleware"
	"github.com/YJ-0220/product-sub000/internal/api/v1"
	"github.com/YJ-0220/product-sub000/internal/api/validator"
	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/mocks"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test-secret"

var (
	admin  = service.Actor{UserID: 1, Role: model.RoleAdmin}
	buyer  = service.Actor{UserID: 10, Role: model.RoleBuyer}
	seller = service.Actor{UserID: 20, Role: model.RoleSeller}
)

type testServer struct {
	app          *fiber.App
	points       *mocks.PointsService
	orders       *mocks.OrderService
	applications *mocks.ApplicationService
	workItems    *mocks.WorkItemService
	users        *mocks.UserService
}

type envelope struct {
	Successful bool            `json:"successful"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	TrackID    string          `json:"x_track_id"`
	Result     json.RawMessage `json:"result"`
}

func newTestServer(t *testing.T, burst int) testServer {
	t.Helper()

	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	cfg := &config.Config{API: config.API{
		JWTSecret: secret,
		RateLimit: config.RateLimit{RPS: 0.001, Burst: burst, IdleTTL: time.Minute},
	}}

	s := testServer{
		points:       &mocks.PointsService{},
		orders:       &mocks.OrderService{},
		applications: &mocks.ApplicationService{},
		workItems:    &mocks.WorkItemService{},
		users:        &mocks.UserService{},
	}

	for _, actor := range []service.Actor{admin, buyer, seller} {
		s.users.On("ResolveActor", mock.Anything, actor.UserID).Return(actor, nil).Maybe()
	}

	handler := v1.NewHandler(logger, s.points, s.orders, s.applications, s.workItems,
		validator.NewXValidator(playground.New(), m))

	s.app = api.NewApp(logger, m, nil)
	api.SetupRoutes(s.app, api.NewHandler(logger, reg), handler,
		middleware.NewAuth(cfg, s.users, logger), middleware.NewRateLimiter(cfg, m, logger))

	return s
}

func token(t *testing.T, actor service.Actor) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func (s testServer) do(t *testing.T, method, path string, actor *service.Actor, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, *actor))
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}

	return resp, env
}

func TestRoutes_System(t *testing.T) {
	s := newTestServer(t, 10)

	resp, _ := s.do(t, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderTrackID))
}

func TestRoutes_Auth(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodGet, "/api/v1/points/balance", nil, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeUnauthorized, env.Code)
		assert.Equal(t, resp.Header.Get(middleware.HeaderTrackID), env.TrackID)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		s := newTestServer(t, 10)

		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("other"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/points/balance", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("role guard", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPatch, "/api/v1/admin/charge-requests/5", &buyer, `{"status":"approved"}`)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeForbidden, env.Code)
		s.points.AssertNotCalled(t, "DecideChargeRequest", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRoutes_RateLimit(t *testing.T) {
	s := newTestServer(t, 1)
	s.points.On("GetBalance", mock.Anything, buyer.UserID).
		Return(service.BalanceResponse{UserID: buyer.UserID, Balance: decimal.Zero}, nil)
	s.orders.On("ListOrders", mock.Anything, mock.Anything).Return([]model.OrderRequest{}, nil)

	resp, _ := s.do(t, http.MethodGet, "/api/v1/points/balance", &buyer, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := s.do(t, http.MethodGet, "/api/v1/points/balance", &buyer, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeTooManyRequests, env.Code)

	resp, _ = s.do(t, http.MethodGet, "/api/v1/orders", &seller, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_CreateOrder(t *testing.T) {
	body := `{"categoryId":1,"subcategoryId":2,"title":"Logo","description":"vector",` +
		`"desiredQuantity":1,"requiredPoints":400}`

	t.Run("created", func(t *testing.T) {
		s := newTestServer(t, 10)
		s.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(cmd service.CreateOrderCommand) bool {
			return cmd.BuyerID == buyer.UserID && cmd.RequiredPoints.Equal(decimal.NewFromInt(400))
		})).Return(service.CreateOrderResponse{
			Order: model.OrderRequest{
				ID: 7, BuyerID: buyer.UserID, Title: "Logo",
				RequiredPoints: decimal.NewFromInt(400), Status: model.OrderStatusPending,
			},
			RemainingPoints: decimal.NewFromInt(600),
		}, nil)

		resp, env := s.do(t, http.MethodPost, "/api/v1/orders", &buyer, body)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, env.Successful)

		var result v1.CreateOrderResponse
		require.NoError(t, json.Unmarshal(env.Result, &result))
		assert.Equal(t, int64(7), result.OrderRequestID)
		assert.Equal(t, model.OrderStatusPending, result.Order.Status)
		assert.True(t, result.RemainingPoints.Equal(decimal.NewFromInt(600)))
	})

	t.Run("insufficient funds is a client error", func(t *testing.T) {
		s := newTestServer(t, 10)
		s.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(service.CreateOrderResponse{},
			service.NewServiceError(constants.ErrCodeInsufficientBalance, service.ErrInsufficientFunds))

		resp, env := s.do(t, http.MethodPost, "/api/v1/orders", &buyer, body)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeInsufficientBalance, env.Code)
	})

	t.Run("non-positive points rejected before the service", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPost, "/api/v1/orders", &buyer,
			`{"categoryId":1,"subcategoryId":2,"title":"Logo","desiredQuantity":1,"requiredPoints":-5}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)
		s.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPost, "/api/v1/orders", &buyer, `{"requiredPoints":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeInvalidRequestBody, env.Code)
	})

	t.Run("sellers cannot create orders", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, _ := s.do(t, http.MethodPost, "/api/v1/orders", &seller, body)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRoutes_ListOrders(t *testing.T) {
	s := newTestServer(t, 10)
	s.orders.On("ListOrders", mock.Anything, service.ListOrdersQuery{
		BuyerID: buyer.UserID, Status: model.OrderStatusPending, Limit: 5,
	}).Return([]model.OrderRequest{{ID: 1}, {ID: 2}}, nil)

	resp, env := s.do(t, http.MethodGet, "/api/v1/orders?status=pending&limit=5", &buyer, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result []v1.OrderResponse
	require.NoError(t, json.Unmarshal(env.Result, &result))
	assert.Len(t, result, 2)

	resp, env = s.do(t, http.MethodGet, "/api/v1/orders?status=archived", &buyer, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)
}

func TestRoutes_DecideApplication(t *testing.T) {
	s := newTestServer(t, 10)
	created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	s.applications.On("DecideApplication", mock.Anything, admin, service.DecideApplicationCommand{
		ApplicationID: 3, Decision: model.ApplicationStatusAccepted,
	}).Return(service.DecideApplicationResponse{
		Application: model.OrderApplication{
			ID: 3, OrderRequestID: 7, SellerID: seller.UserID, Status: model.ApplicationStatusAccepted,
			Seller: model.User{ID: seller.UserID, Name: "Seller A"}, CreatedAt: created, UpdatedAt: created,
		},
		OrderStatus:      model.OrderStatusProgress,
		RejectedSiblings: 2,
	}, nil)

	resp, env := s.do(t, http.MethodPatch, "/api/v1/admin/applications/3", &admin, `{"status":"accepted"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.Unmarshal(env.Result, &result))
	application := result["application"].(map[string]any)
	assert.Equal(t, "Seller A", application["seller"].(map[string]any)["name"])
	assert.Equal(t, "2026-10-18T09:30:00Z", application["createdAt"])
	assert.Equal(t, "progress", result["orderStatus"])
	assert.Equal(t, float64(2), result["rejectedSiblings"])

	resp, env = s.do(t, http.MethodPatch, "/api/v1/admin/applications/3", &admin, `{"status":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)
}

func TestRoutes_PointRequests(t *testing.T) {
	t.Run("submit charge request", func(t *testing.T) {
		s := newTestServer(t, 10)
		s.points.On("SubmitChargeRequest", mock.Anything, mock.MatchedBy(func(cmd service.SubmitChargeRequestCommand) bool {
			return cmd.UserID == buyer.UserID && cmd.Amount.Equal(decimal.RequireFromString("500.50"))
		})).Return(model.PointChargeRequest{ID: 11}, nil)

		resp, env := s.do(t, http.MethodPost, "/api/v1/points/charge-requests", &buyer, `{"amount":"500.50"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"requestId":11}`, string(env.Result))
	})

	t.Run("charge requests are for buyers", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPost, "/api/v1/points/charge-requests", &seller, `{"amount":"10"}`)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeForbidden, env.Code)
		s.points.AssertNotCalled(t, "SubmitChargeRequest", mock.Anything, mock.Anything)
	})

	t.Run("withdraw requests are for sellers", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPost, "/api/v1/points/withdraw-requests", &buyer, `{"amount":"10"}`)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeForbidden, env.Code)
		s.points.AssertNotCalled(t, "SubmitWithdrawRequest", mock.Anything, mock.Anything)
	})

	t.Run("amount wider than the ledger column", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, env := s.do(t, http.MethodPost, "/api/v1/points/charge-requests", &buyer,
			`{"amount":"1000000000000000000"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)
		s.points.AssertNotCalled(t, "SubmitChargeRequest", mock.Anything, mock.Anything)
	})

	t.Run("amount with three decimals", func(t *testing.T) {
		s := newTestServer(t, 10)

		resp, _ := s.do(t, http.MethodPost, "/api/v1/points/charge-requests", &buyer, `{"amount":"1.005"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("already decided", func(t *testing.T) {
		s := newTestServer(t, 10)
		s.points.On("DecideWithdrawRequest", mock.Anything, admin, service.DecideRequestCommand{
			RequestID: 4, Decision: model.RequestStatusRejected,
		}).Return(model.PointWithdrawRequest{},
			service.NewServiceError(constants.ErrCodeAlreadyDecided, service.ErrRequestAlreadyDecided))

		resp, env := s.do(t, http.MethodPatch, "/api/v1/admin/withdraw-requests/4", &admin, `{"status":"rejected"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeAlreadyDecided, env.Code)
	})

	t.Run("storage failure hides the cause", func(t *testing.T) {
		s := newTestServer(t, 10)
		s.points.On("GetBalance", mock.Anything, buyer.UserID).Return(service.BalanceResponse{},
			service.NewServiceError(service.ErrCodeDatabase, assert.AnError))

		resp, env := s.do(t, http.MethodGet, "/api/v1/points/balance", &buyer, "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeInternalError, env.Code)
	})
}
