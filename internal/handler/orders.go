package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/internal/service"
	customError "github.com/bluimports/opsdesk/pkg/errors"
	"github.com/bluimports/opsdesk/pkg/response"
)

type OrderHandler struct {
	service   *service.OrderService
	validator *validator.Validate
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service:   service,
		validator: newValidator(),
	}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.CreateOrderResponse{Order: order})
}

// GetOrder handles GET /api/v1/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, order)
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, orders)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), orderID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, nil)
}

// RegisterPayment handles POST /api/v1/orders/{orderId}/payments
func (h *OrderHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	var request domain.RegisterPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	result, err := h.service.RegisterPayment(r.Context(), orderID, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// ListPayments handles GET /api/v1/orders/{orderId}/payments
func (h *OrderHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	payments, err := h.service.GetPayments(r.Context(), orderID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, payments)
}

// TransitionStatus handles POST /api/v1/orders/{orderId}/status
func (h *OrderHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	var request domain.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	order, err := h.service.TransitionStatus(r.Context(), orderID, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, order)
}

// GetTimeline handles GET /api/v1/orders/{orderId}/timeline
func (h *OrderHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	milestones, err := h.service.GetTimeline(r.Context(), orderID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, milestones)
}

// GetContract handles GET /api/v1/orders/{orderId}/contract
func (h *OrderHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromRequest(w, r)
	if !ok {
		return
	}

	summary, err := h.service.ContractSummary(r.Context(), orderID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

func orderIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["orderId"]
	orderID, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "invalid order id", err)
		return uuid.Nil, false
	}
	return orderID, true
}

// writeBusinessError maps a service error onto an HTTP status by its code.
func writeBusinessError(w http.ResponseWriter, err error) {
	var business *customError.BusinessError
	if !errors.As(err, &business) {
		response.InternalServerError(w, "unexpected error", err)
		return
	}

	switch business.Code {
	case customError.ErrCodeOrderNotFound,
		customError.ErrCodeClientNotFound,
		customError.ErrCodeSupplierNotFound:
		response.NotFound(w, business.Message)
	case customError.ErrCodeInvalidInput,
		customError.ErrCodeNotFinanced,
		customError.ErrCodeNoInstallments,
		customError.ErrCodeUnknownOrderStatus:
		response.BadRequest(w, business.Message, business.Err)
	case customError.ErrCodeInconsistentState:
		response.Error(w, http.StatusConflict, business.Message, business.Err)
	default:
		response.InternalServerError(w, business.Message, business.Err)
	}
}
