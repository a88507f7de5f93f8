package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bluimports/opsdesk/internal/config"
	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/internal/handler"
	"github.com/bluimports/opsdesk/internal/service"
	"github.com/bluimports/opsdesk/tests/mocks"
)

// Routing and error mapping through the real handler + service stack, with
// the repository layer mocked out.
type handlerFixture struct {
	orderRepo   *mocks.MockOrderRepository
	paymentRepo *mocks.MockPaymentRepository
	clientRepo  *mocks.MockClientRepository
	router      *mux.Router
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		orderRepo:   new(mocks.MockOrderRepository),
		paymentRepo: new(mocks.MockPaymentRepository),
		clientRepo:  new(mocks.MockClientRepository),
	}

	cfg := &config.Config{
		Financing: config.FinancingConfig{
			DefaultAnnualRate: "0.36",
			SpecialAnnualRate: "0.24",
			MaxInstallments:   24,
		},
	}
	orderService := service.NewOrderService(f.orderRepo, f.paymentRepo, f.clientRepo, nil, cfg)
	orderHandler := handler.NewOrderHandler(orderService)

	f.router = mux.NewRouter()
	api := f.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}", orderHandler.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{orderId}", orderHandler.DeleteOrder).Methods("DELETE")
	api.HandleFunc("/orders/{orderId}/payments", orderHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/orders/{orderId}/status", orderHandler.TransitionStatus).Methods("POST")
	api.HandleFunc("/orders/{orderId}/contract", orderHandler.GetContract).Methods("GET")
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func financedOrder() *domain.Order {
	orderID := uuid.New()
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:                orderID,
		ClientID:          uuid.New(),
		ProductName:       "MacBook Air",
		ProductValue:      decimal.NewFromInt(3000),
		SellingPrice:      decimal.NewFromInt(3000),
		PaymentMethod:     domain.PaymentMethodFinanced,
		InstallmentCount:  3,
		FinancedAmount:    decimal.NewFromInt(3000),
		TotalWithInterest: decimal.NewFromInt(3270),
		InstallmentValue:  decimal.NewFromInt(1090),
		ContractStatus:    domain.ContractStatusEmDia,
		FulfillmentStatus: domain.OrderStatusCreated,
		Installments: []*domain.Installment{
			{ID: uuid.New(), OrderID: orderID, Number: 1, Amount: decimal.NewFromInt(1090), AmountPaid: decimal.Zero, Status: domain.InstallmentStatusPending, DueDate: due},
			{ID: uuid.New(), OrderID: orderID, Number: 2, Amount: decimal.NewFromInt(1090), AmountPaid: decimal.Zero, Status: domain.InstallmentStatusPending, DueDate: due.AddDate(0, 1, 0)},
			{ID: uuid.New(), OrderID: orderID, Number: 3, Amount: decimal.NewFromInt(1090), AmountPaid: decimal.Zero, Status: domain.InstallmentStatusPending, DueDate: due.AddDate(0, 2, 0)},
		},
	}
}

func TestCreateOrderHandler(t *testing.T) {
	f := newHandlerFixture()
	clientID := uuid.New()
	f.clientRepo.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID, Name: "Ana"}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	rec := f.do(t, "POST", "/api/v1/orders", map[string]interface{}{
		"client_id":         clientID,
		"product_name":      "MacBook Air",
		"product_value":     "3000",
		"payment_method":    "financed",
		"down_payment":      "0",
		"installment_count": 3,
	})

	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Order *domain.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.True(t, env.Data.Order.InstallmentValue.Equal(decimal.NewFromInt(1090)))
	f.orderRepo.AssertExpectations(t)
}

func TestCreateOrderUnknownClient(t *testing.T) {
	f := newHandlerFixture()
	f.clientRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	rec := f.do(t, "POST", "/api/v1/orders", map[string]interface{}{
		"client_id":      uuid.New(),
		"product_name":   "MacBook Air",
		"product_value":  "3000",
		"payment_method": "cash",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newHandlerFixture()

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing product name", map[string]interface{}{
			"client_id":      uuid.New(),
			"product_value":  "100",
			"payment_method": "cash",
		}},
		{"zero product value", map[string]interface{}{
			"client_id":      uuid.New(),
			"product_name":   "iPad",
			"product_value":  "0",
			"payment_method": "cash",
		}},
		{"negative down payment", map[string]interface{}{
			"client_id":         uuid.New(),
			"product_name":      "iPad",
			"product_value":     "100",
			"payment_method":    "financed",
			"down_payment":      "-1",
			"installment_count": 3,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, "POST", "/api/v1/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	f.clientRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRegisterPaymentHandler(t *testing.T) {
	f := newHandlerFixture()
	order := financedOrder()
	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("ApplyReconciliation", mock.Anything, order, mock.AnythingOfType("*domain.Payment")).Return(nil)

	rec := f.do(t, "POST", fmt.Sprintf("/api/v1/orders/%s/payments", order.ID), map[string]interface{}{
		"amount": "1090",
		"method": "pix",
	})

	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var env struct {
		Data domain.RegisterPaymentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Data.Remainder.IsZero())
	f.orderRepo.AssertExpectations(t)
}

func TestRegisterPaymentNotFinanced(t *testing.T) {
	f := newHandlerFixture()
	order := financedOrder()
	order.PaymentMethod = domain.PaymentMethodCash
	order.Installments = nil
	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	rec := f.do(t, "POST", fmt.Sprintf("/api/v1/orders/%s/payments", order.ID), map[string]interface{}{
		"amount": "100",
		"method": "pix",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterPaymentBadOrderID(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, "POST", "/api/v1/orders/not-a-uuid/payments", map[string]interface{}{
		"amount": "100",
		"method": "pix",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.orderRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	rec := f.do(t, "GET", fmt.Sprintf("/api/v1/orders/%s", uuid.New()), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestTransitionStatusHandler(t *testing.T) {
	f := newHandlerFixture()
	order := financedOrder()
	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("AppendStatusEvent", mock.Anything, order, mock.AnythingOfType("*domain.StatusEvent")).Return(nil)

	rec := f.do(t, "POST", fmt.Sprintf("/api/v1/orders/%s/status", order.ID), map[string]interface{}{
		"status": "payment_confirmed",
	})

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, domain.OrderStatusPaymentConfirmed, order.FulfillmentStatus)
}

func TestTransitionStatusUnknown(t *testing.T) {
	f := newHandlerFixture()
	order := financedOrder()
	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	rec := f.do(t, "POST", fmt.Sprintf("/api/v1/orders/%s/status", order.ID), map[string]interface{}{
		"status": "teleported",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.orderRepo.AssertNotCalled(t, "AppendStatusEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetContractHandler(t *testing.T) {
	f := newHandlerFixture()
	order := financedOrder()
	order.Installments[0].AmountPaid = decimal.NewFromInt(1090)
	order.Installments[0].Status = domain.InstallmentStatusPaid
	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	rec := f.do(t, "GET", fmt.Sprintf("/api/v1/orders/%s/contract", order.ID), nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data domain.ContractSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, order.ID, env.Data.OrderID)
	assert.True(t, env.Data.TotalPaid.Equal(decimal.NewFromInt(1090)))
	assert.True(t, env.Data.Outstanding.Equal(decimal.NewFromInt(2180)))
}
