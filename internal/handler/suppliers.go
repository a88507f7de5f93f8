package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/internal/service"
	"github.com/bluimports/opsdesk/pkg/response"
)

type SupplierHandler struct {
	service   *service.SupplierService
	validator *validator.Validate
}

func NewSupplierHandler(service *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Create handles POST /api/v1/suppliers
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decode(w, r)
	if !ok {
		return
	}

	supplier, err := h.service.Create(r.Context(), request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, supplier)
}

// Get handles GET /api/v1/suppliers/{supplierId}
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := supplierIDFromRequest(w, r)
	if !ok {
		return
	}

	supplier, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, supplier)
}

// List handles GET /api/v1/suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.List(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, suppliers)
}

// Update handles PUT /api/v1/suppliers/{supplierId}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := supplierIDFromRequest(w, r)
	if !ok {
		return
	}

	request, ok := h.decode(w, r)
	if !ok {
		return
	}

	supplier, err := h.service.Update(r.Context(), id, request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, supplier)
}

// Delete handles DELETE /api/v1/suppliers/{supplierId}
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := supplierIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *SupplierHandler) decode(w http.ResponseWriter, r *http.Request) (*domain.UpsertSupplierRequest, bool) {
	var request domain.UpsertSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return nil, false
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return nil, false
	}
	return &request, true
}

func supplierIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["supplierId"])
	if err != nil {
		response.BadRequest(w, "invalid supplier id", err)
		return uuid.Nil, false
	}
	return id, true
}
