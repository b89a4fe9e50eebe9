package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/services"
	xhttp "github.com/cardealer/dealership-gateway/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) RecordTransaction(ctx context.Context, req model.TradeRequest) (*model.FinancialRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialRecord), args.Error(1)
}

func (m *MockTradeService) ManufacturerExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTradeService) VehicleExists(ctx context.Context, brand, vmodel, manufacturer string) (bool, error) {
	args := m.Called(ctx, brand, vmodel, manufacturer)
	return args.Bool(0), args.Error(1)
}

func (m *MockTradeService) CustomerExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func tradeBody(operation string, quantity int64) []byte {
	b, _ := json.Marshal(createTradeRequest{
		Brand:        "Toyota",
		Model:        "Corolla",
		Manufacturer: "Toyota",
		Operation:    operation,
		Quantity:     quantity,
		CustomerName: "Alice",
	})
	return b
}

func TestTradeHandler_CreateTrade(t *testing.T) {
	t.Run("successful buy", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(r model.TradeRequest) bool {
			return r.Operation == model.OperationBuy && r.Quantity == 3 && r.CustomerName == "Alice"
		})).Return(&model.FinancialRecord{ID: 1, TransactionType: model.OperationBuy, Amount: 3}, nil)

		ctx := setupTestContext("POST", "/add_message", tradeBody("buy", 3))
		handler.CreateTrade(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, "success", response["status"])

		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		ctx := setupTestContext("POST", "/add_message", []byte("invalid json"))
		handler.CreateTrade(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
	})

	t.Run("quantity below one rejected before the service", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		ctx := setupTestContext("POST", "/add_message", tradeBody("buy", 0))
		handler.CreateTrade(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		ctx := setupTestContext("POST", "/add_message", tradeBody("sell", -2))
		handler.CreateTrade(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
	})

	t.Run("illegal characters rejected", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		b, _ := json.Marshal(createTradeRequest{
			Brand:        "<script>",
			Model:        "Corolla",
			Manufacturer: "Toyota",
			Operation:    "buy",
			Quantity:     1,
			CustomerName: "Alice",
		})
		ctx := setupTestContext("POST", "/add_message", b)
		handler.CreateTrade(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
	})

	t.Run("invalid operation", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidOperation)

		ctx := setupTestContext("POST", "/add_message", tradeBody("lease", 1))
		handler.CreateTrade(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything).Return(nil, services.ErrVehicleNotFound)

		ctx := setupTestContext("POST", "/add_message", tradeBody("sell", 1))
		handler.CreateTrade(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("insufficient stock", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything).Return(nil, services.ErrInsufficientStock)

		ctx := setupTestContext("POST", "/add_message", tradeBody("sell", 99))
		handler.CreateTrade(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, services.ErrInsufficientStock.Error(), response["error"])
	})

	t.Run("store failure is an internal error", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		ctx := setupTestContext("POST", "/add_message", tradeBody("buy", 1))
		handler.CreateTrade(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		// store details never leak to the client
		assert.Equal(t, "internal error", response["error"])
	})
}

func TestTradeHandler_Exists(t *testing.T) {
	t.Run("manufacturer exists", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("ManufacturerExists", mock.Anything, "Toyota").Return(true, nil)

		ctx := setupTestContext("GET", "/exists/manufacturer?name=Toyota", nil)
		handler.ManufacturerExists(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response existsResponse
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.True(t, response.Exists)
	})

	t.Run("manufacturer name missing", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		ctx := setupTestContext("GET", "/exists/manufacturer", nil)
		handler.ManufacturerExists(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "ManufacturerExists", mock.Anything, mock.Anything)
	})

	t.Run("vehicle exists", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("VehicleExists", mock.Anything, "Toyota", "Corolla", "Toyota").Return(false, nil)

		ctx := setupTestContext("GET", "/exists/vehicle?brand=Toyota&model=Corolla&manufacturer=Toyota", nil)
		handler.VehicleExists(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response existsResponse
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.False(t, response.Exists)
	})

	t.Run("vehicle params missing", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		ctx := setupTestContext("GET", "/exists/vehicle?brand=Toyota", nil)
		handler.VehicleExists(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("customer lookup failure", func(t *testing.T) {
		svc := new(MockTradeService)
		handler := NewTradeHandler(svc)

		svc.On("CustomerExists", mock.Anything, "Alice").Return(false, errors.New("db down"))

		ctx := setupTestContext("GET", "/exists/customer?name=Alice", nil)
		handler.CustomerExists(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
	})
}
