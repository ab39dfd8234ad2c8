package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type StaffHandler struct {
	repo   storage.StaffRepository
	logger *slog.Logger
}

func NewStaffHandler(repo storage.StaffRepository, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{repo: repo, logger: logger}
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	var (
		staff []model.Staff
		err   error
	)
	if activeOnly(r) {
		staff, err = h.repo.ListActive(r.Context(), skip, limit)
	} else {
		staff, err = h.repo.List(r.Context(), skip, limit)
	}
	if err != nil {
		h.logger.Error("list staff", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	member, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "staff member not found")
			return
		}
		h.logger.Error("get staff", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.StaffCreate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Position == "" {
		httpx.BadRequest(w, "first_name, last_name, email and position are required")
		return
	}
	if req.HourlyRate != nil && !validMoney(*req.HourlyRate) {
		httpx.BadRequest(w, "hourly_rate must be a decimal amount like 25.00")
		return
	}

	if _, err := h.repo.GetByEmail(r.Context(), req.Email); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "conflict", "a staff member with this email already exists")
		return
	} else if !storage.IsNotFound(err) {
		h.logger.Error("staff email lookup", "err", err)
		httpx.Internal(w)
		return
	}

	member, err := h.repo.Create(r.Context(), req)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a staff member with this email already exists")
			return
		}
		h.logger.Error("create staff", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, member)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.StaffUpdate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	if req.HourlyRate != nil && !validMoney(*req.HourlyRate) {
		httpx.BadRequest(w, "hourly_rate must be a decimal amount like 25.00")
		return
	}

	// Resolve the row first so an unknown id is a 404 even when the new
	// email is already taken.
	if _, err := h.repo.Get(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "staff member not found")
			return
		}
		h.logger.Error("get staff", "err", err)
		httpx.Internal(w)
		return
	}

	if req.Email != nil {
		other, err := h.repo.GetByEmail(r.Context(), *req.Email)
		switch {
		case err == nil && other.ID != id:
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a staff member with this email already exists")
			return
		case err != nil && !storage.IsNotFound(err):
			h.logger.Error("staff email lookup", "err", err)
			httpx.Internal(w)
			return
		}
	}

	member, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "staff member not found")
			return
		}
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "a staff member with this email already exists")
			return
		}
		h.logger.Error("update staff", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "staff member not found")
			return
		}
		if storage.IsForeignKeyViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "constraint_violation", "staff member has appointments and cannot be deleted")
			return
		}
		h.logger.Error("delete staff", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "staff member deleted successfully"})
}

func activeOnly(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("active_only")) {
	case "1", "t", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
