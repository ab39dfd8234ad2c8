package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type ServiceHandler struct {
	repo   storage.ServiceRepository
	logger *slog.Logger
}

func NewServiceHandler(repo storage.ServiceRepository, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, logger: logger}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	var (
		services []model.Service
		err      error
	)
	if activeOnly(r) {
		services, err = h.repo.ListActive(r.Context(), skip, limit)
	} else {
		services, err = h.repo.List(r.Context(), skip, limit)
	}
	if err != nil {
		h.logger.Error("list services", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, services)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	svc, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "service not found")
			return
		}
		h.logger.Error("get service", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ServiceCreate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price == "" || req.DurationMinutes <= 0 {
		httpx.BadRequest(w, "name, price and a positive duration_minutes are required")
		return
	}
	if !validMoney(req.Price) {
		httpx.BadRequest(w, "price must be a decimal amount like 35.00")
		return
	}

	// Service names are unique; report duplicates before the store write.
	if _, err := h.repo.GetByName(r.Context(), req.Name); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "conflict", "a service with this name already exists")
		return
	} else if !storage.IsNotFound(err) {
		h.logger.Error("service name lookup", "err", err)
		httpx.Internal(w)
		return
	}

	svc, err := h.repo.Create(r.Context(), req)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a service with this name already exists")
			return
		}
		h.logger.Error("create service", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.ServiceUpdate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	if req.Price != nil && !validMoney(*req.Price) {
		httpx.BadRequest(w, "price must be a decimal amount like 35.00")
		return
	}

	// Resolve the row first so an unknown id is a 404 even when the new
	// name is already taken.
	if _, err := h.repo.Get(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "service not found")
			return
		}
		h.logger.Error("get service", "err", err)
		httpx.Internal(w)
		return
	}

	if req.Name != nil {
		other, err := h.repo.GetByName(r.Context(), *req.Name)
		switch {
		case err == nil && other.ID != id:
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a service with this name already exists")
			return
		case err != nil && !storage.IsNotFound(err):
			h.logger.Error("service name lookup", "err", err)
			httpx.Internal(w)
			return
		}
	}

	svc, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "service not found")
			return
		}
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a service with this name already exists")
			return
		}
		h.logger.Error("update service", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "service not found")
			return
		}
		if storage.IsForeignKeyViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "constraint_violation", "service has appointments and cannot be deleted")
			return
		}
		h.logger.Error("delete service", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "service deleted successfully"})
}
