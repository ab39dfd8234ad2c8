package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type AppointmentHandler struct {
	repo   storage.AppointmentRepository
	logger *slog.Logger
}

func NewAppointmentHandler(repo storage.AppointmentRepository, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{repo: repo, logger: logger}
}

// List applies at most one filter per request. Precedence when several query
// parameters are present: customer_id, then staff_id, then the
// start_date/end_date pair, then status.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var (
		appts []model.Appointment
		err   error
	)
	switch {
	case q.Get("customer_id") != "":
		customerID, perr := strconv.ParseInt(q.Get("customer_id"), 10, 64)
		if perr != nil {
			httpx.BadRequest(w, "invalid customer_id")
			return
		}
		appts, err = h.repo.ListByCustomer(r.Context(), customerID, skip, limit)

	case q.Get("staff_id") != "":
		staffID, perr := strconv.ParseInt(q.Get("staff_id"), 10, 64)
		if perr != nil {
			httpx.BadRequest(w, "invalid staff_id")
			return
		}
		appts, err = h.repo.ListByStaff(r.Context(), staffID, skip, limit)

	case q.Get("start_date") != "" && q.Get("end_date") != "":
		from, ok := parseDateParam(w, q.Get("start_date"), "start_date", false)
		if !ok {
			return
		}
		to, ok := parseDateParam(w, q.Get("end_date"), "end_date", true)
		if !ok {
			return
		}
		appts, err = h.repo.ListByDateRange(r.Context(), from, to, skip, limit)

	case q.Get("status") != "":
		status := model.AppointmentStatus(q.Get("status"))
		if !status.Valid() {
			httpx.BadRequest(w, "invalid status")
			return
		}
		appts, err = h.repo.ListByStatus(r.Context(), status, skip, limit)

	default:
		appts, err = h.repo.List(r.Context(), skip, limit)
	}

	if err != nil {
		h.logger.Error("list appointments", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, appts)
}

// parseDateParam accepts RFC 3339 timestamps or bare dates. A bare date used
// as the upper bound covers the whole day.
func parseDateParam(w http.ResponseWriter, raw, name string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httpx.BadRequest(w, "invalid "+name)
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	appt, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "appointment not found")
			return
		}
		h.logger.Error("get appointment", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AppointmentCreate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	if req.CustomerID <= 0 || req.StaffID <= 0 || req.ServiceID <= 0 {
		httpx.BadRequest(w, "customer_id, staff_id and service_id are required")
		return
	}
	if req.ScheduledDate.IsZero() {
		httpx.BadRequest(w, "scheduled_date is required")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		httpx.BadRequest(w, "invalid status")
		return
	}

	appt, err := h.repo.Create(r.Context(), req)
	if err != nil {
		if storage.IsForeignKeyViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "constraint_violation", "referenced customer, staff member or service does not exist")
			return
		}
		h.logger.Error("create appointment", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.AppointmentUpdate
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		httpx.BadRequest(w, "invalid status")
		return
	}

	appt, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "appointment not found")
			return
		}
		if storage.IsForeignKeyViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "constraint_violation", "referenced customer, staff member or service does not exist")
			return
		}
		h.logger.Error("update appointment", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.NotFound(w, "appointment not found")
			return
		}
		h.logger.Error("delete appointment", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "appointment deleted successfully"})
}
