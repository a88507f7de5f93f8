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

type ClientHandler struct {
	service   *service.ClientService
	validator *validator.Validate
}

func NewClientHandler(service *service.ClientService) *ClientHandler {
	return &ClientHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decode(w, r)
	if !ok {
		return
	}

	client, err := h.service.Create(r.Context(), request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, client)
}

// Get handles GET /api/v1/clients/{clientId}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, client)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, clients)
}

// Update handles PUT /api/v1/clients/{clientId}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	request, ok := h.decode(w, r)
	if !ok {
		return
	}

	client, err := h.service.Update(r.Context(), id, request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, client)
}

// Delete handles DELETE /api/v1/clients/{clientId}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *ClientHandler) decode(w http.ResponseWriter, r *http.Request) (*domain.UpsertClientRequest, bool) {
	var request domain.UpsertClientRequest
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

func clientIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["clientId"])
	if err != nil {
		response.BadRequest(w, "invalid client id", err)
		return uuid.Nil, false
	}
	return id, true
}
