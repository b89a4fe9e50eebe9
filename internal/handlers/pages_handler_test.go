package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Options(ctx context.Context) (*model.CatalogOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogOptions), args.Error(1)
}

func (m *MockCatalogService) Trades(ctx context.Context) ([]*model.TradeRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TradeRow), args.Error(1)
}

func newPagesHandler(t *testing.T) (*PagesHandler, *MockAuthService, *MockCatalogService) {
	auth := new(MockAuthService)
	catalog := new(MockCatalogService)
	h, err := NewPagesHandler(auth, catalog, time.Hour)
	require.NoError(t, err)
	return h, auth, catalog
}

func sampleCatalog() (*model.CatalogOptions, []*model.TradeRow) {
	opts := &model.CatalogOptions{
		Brands:        []string{"BMW"},
		Models:        []string{"X5"},
		Manufacturers: []string{"BMW"},
		Customers:     []string{"Alice"},
	}
	trades := []*model.TradeRow{
		{Brand: "BMW", Model: "X5", ManufacturerName: "BMW", TransactionType: model.OperationBuy, Amount: 2, CustomerName: "Alice", Date: time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC)},
	}
	return opts, trades
}

func TestPagesHandler_Index(t *testing.T) {
	h, _, _ := newPagesHandler(t)

	ctx := setupTestContext("GET", "/", nil)
	h.Index(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Type")), "text/html")
	assert.Contains(t, string(ctx.Response.Header.Peek("Cache-Control")), "max-age")
	assert.Contains(t, string(ctx.Response.Body()), "Database Connection")
}

func TestPagesHandler_Login(t *testing.T) {
	h, _, _ := newPagesHandler(t)

	ctx := setupTestContext("GET", "/login.html", nil)
	h.Login(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "Car Sales Login")
}

func TestPagesHandler_Management(t *testing.T) {
	t.Run("no credentials renders the error page", func(t *testing.T) {
		h, _, catalog := newPagesHandler(t)

		ctx := setupTestContext("GET", "/vehicles_management.html", nil)
		h.Management(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Invalid username or password")
		catalog.AssertNotCalled(t, "Options", mock.Anything)
	})

	t.Run("query credentials log in and set a session cookie", func(t *testing.T) {
		h, auth, catalog := newPagesHandler(t)
		opts, trades := sampleCatalog()

		auth.On("Login", mock.Anything, "202235010611", "1234").
			Return(&model.Session{Token: "tok-1", Username: "202235010611", Role: model.RoleAdmin}, nil)
		catalog.On("Options", mock.Anything).Return(opts, nil)
		catalog.On("Trades", mock.Anything).Return(trades, nil)

		ctx := setupTestContext("GET", "/vehicles_management.html?username=202235010611&password=1234", nil)
		h.Management(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		body := string(ctx.Response.Body())
		assert.Contains(t, body, "Car Sales Management")
		assert.Contains(t, body, `<option value="BMW">`)
		assert.Contains(t, body, "2024-12-04")
		assert.NotContains(t, body, "display:none")
		assert.Contains(t, string(ctx.Response.Header.PeekCookie(sessionCookie)), "tok-1")
	})

	t.Run("wrong credentials render the error page", func(t *testing.T) {
		h, auth, _ := newPagesHandler(t)

		auth.On("Login", mock.Anything, "ghost", "nope").Return(nil, services.ErrInvalidCredentials)

		ctx := setupTestContext("GET", "/vehicles_management.html?username=ghost&password=nope", nil)
		h.Management(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Invalid username or password")
	})

	t.Run("live session cookie skips login", func(t *testing.T) {
		h, auth, catalog := newPagesHandler(t)
		opts, trades := sampleCatalog()

		auth.On("Verify", mock.Anything, "tok-2").
			Return(&model.Session{Token: "tok-2", Username: "guest", Role: model.RoleGuest}, nil)
		catalog.On("Options", mock.Anything).Return(opts, nil)
		catalog.On("Trades", mock.Anything).Return(trades, nil)

		ctx := setupTestContext("GET", "/vehicles_management.html", nil)
		ctx.Request.Header.SetCookie(sessionCookie, "tok-2")
		h.Management(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		// guests see the history but not the operation form
		assert.Contains(t, string(ctx.Response.Body()), "display:none")
		auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPagesHandler_Logout(t *testing.T) {
	h, auth, _ := newPagesHandler(t)

	auth.On("Logout", mock.Anything, "tok-3").Return(nil)

	ctx := setupTestContext("GET", "/logout", nil)
	ctx.Request.Header.SetCookie(sessionCookie, "tok-3")
	h.Logout(ctx)

	assert.Equal(t, 302, ctx.Response.StatusCode())
	assert.Equal(t, "/login.html", string(ctx.Response.Header.Peek("Location")))
	auth.AssertExpectations(t)
}

func TestPagesHandler_Assets(t *testing.T) {
	h, _, _ := newPagesHandler(t)

	t.Run("stylesheet", func(t *testing.T) {
		ctx := setupTestContext("GET", "/car_sales_system.css", nil)
		h.Stylesheet(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "text/css", string(ctx.Response.Header.Peek("Content-Type")))
		assert.Contains(t, string(ctx.Response.Header.Peek("Cache-Control")), "max-age")
		assert.Contains(t, string(ctx.Response.Body()), "font-family")
	})

	t.Run("favicon", func(t *testing.T) {
		ctx := setupTestContext("GET", "/favicon.ico", nil)
		h.Favicon(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "image/svg+xml", string(ctx.Response.Header.Peek("Content-Type")))
		assert.Contains(t, string(ctx.Response.Body()), "<svg")
	})
}
