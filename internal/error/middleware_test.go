package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/YJ-0220/product-sub000/internal/constants"
	errorMiddleware "github.com/YJ-0220/product-sub000/internal/error"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "service error keeps its code",
			err:        service.NewServiceError(constants.ErrCodeDuplicateApplication, errors.New("dup")),
			wantStatus: fiber.StatusConflict,
			wantCode:   constants.ErrCodeDuplicateApplication,
		},
		{
			name:       "database failure is masked",
			err:        service.NewServiceError(service.ErrCodeDatabase, errors.New("connection reset")),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   constants.ErrCodeInternalError,
		},
		{
			name:       "fiber not found",
			err:        fiber.ErrNotFound,
			wantStatus: fiber.StatusNotFound,
			wantCode:   constants.ErrCodeNotFound,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   constants.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: errorMiddleware.ErrorHandler(zap.NewNop())})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)

			var body errorMiddleware.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
