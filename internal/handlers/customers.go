package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type CustomerHandler struct {
	repo   storage.CustomerRepository
	logger *slog.Logger
}

func NewCustomerHandler(repo storage.CustomerRepository, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{repo: repo, logger: logger}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	customers, err := h.repo.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("list customers", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customer, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "customer not found")
			return
		}
		h.logger.Error("get customer", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerCreate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		httpx.BadRequest(w, "first_name, last_name and email are required")
		return
	}

	// Duplicate emails are reported before touching the store, matching
	// the conflict-first contract of the API.
	if _, err := h.repo.GetByEmail(r.Context(), req.Email); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "conflict", "a customer with this email already exists")
		return
	} else if !storage.IsNotFound(err) {
		h.logger.Error("customer email lookup", "err", err)
		httpx.Internal(w)
		return
	}

	customer, err := h.repo.Create(r.Context(), req)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a customer with this email already exists")
			return
		}
		h.logger.Error("create customer", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.CustomerUpdate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}

	// Resolve the row first so an unknown id is a 404 even when the new
	// email is already taken.
	if _, err := h.repo.Get(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "customer not found")
			return
		}
		h.logger.Error("get customer", "err", err)
		httpx.Internal(w)
		return
	}

	if req.Email != nil {
		other, err := h.repo.GetByEmail(r.Context(), *req.Email)
		switch {
		case err == nil && other.ID != id:
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a customer with this email already exists")
			return
		case err != nil && !storage.IsNotFound(err):
			h.logger.Error("customer email lookup", "err", err)
			httpx.Internal(w)
			return
		}
	}

	customer, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "customer not found")
			return
		}
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a customer with this email already exists")
			return
		}
		h.logger.Error("update customer", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "customer not found")
			return
		}
		if storage.IsForeignKeyViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "constraint_violation", "customer has appointments and cannot be deleted")
			return
		}
		h.logger.Error("delete customer", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "customer deleted successfully"})
}
