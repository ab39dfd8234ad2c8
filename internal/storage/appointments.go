package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/outbox"
)

const appointmentCols = `id, customer_id, staff_id, service_id, scheduled_date, end_date, status::text AS status, notes, internal_notes, created_at, updated_at`

type AppointmentRepository interface {
	Get(ctx context.Context, id int64) (model.Appointment, error)
	List(ctx context.Context, skip, limit int) ([]model.Appointment, error)
	ListByCustomer(ctx context.Context, customerID int64, skip, limit int) ([]model.Appointment, error)
	ListByStaff(ctx context.Context, staffID int64, skip, limit int) ([]model.Appointment, error)
	ListByDateRange(ctx context.Context, from, to time.Time, skip, limit int) ([]model.Appointment, error)
	ListByStatus(ctx context.Context, status model.AppointmentStatus, skip, limit int) ([]model.Appointment, error)
	Create(ctx context.Context, in model.AppointmentCreate) (model.Appointment, error)
	Update(ctx context.Context, id int64, in model.AppointmentUpdate) (model.Appointment, error)
	Delete(ctx context.Context, id int64) (model.Appointment, error)
}

// pgxAppointmentRepository wraps every write in a transaction so the state
// change and its outbox event commit atomically.
type pgxAppointmentRepository struct {
	pool   *db.Pool
	events *outbox.Repository
	store  *Store[model.Appointment]
}

func NewAppointmentRepository(pool *db.Pool, events *outbox.Repository) AppointmentRepository {
	return &pgxAppointmentRepository{
		pool:   pool,
		events: events,
		store:  NewStore[model.Appointment](pool, "appointments", appointmentCols),
	}
}

func (r *pgxAppointmentRepository) Get(ctx context.Context, id int64) (model.Appointment, error) {
	return r.store.Get(ctx, id)
}

func (r *pgxAppointmentRepository) List(ctx context.Context, skip, limit int) ([]model.Appointment, error) {
	return r.store.List(ctx, skip, limit)
}

func (r *pgxAppointmentRepository) ListByCustomer(ctx context.Context, customerID int64, skip, limit int) ([]model.Appointment, error) {
	return r.store.ListWhere(ctx, "customer_id = $1", []any{customerID}, skip, limit)
}

func (r *pgxAppointmentRepository) ListByStaff(ctx context.Context, staffID int64, skip, limit int) ([]model.Appointment, error) {
	return r.store.ListWhere(ctx, "staff_id = $1", []any{staffID}, skip, limit)
}

// ListByDateRange matches on scheduled_date with both bounds inclusive.
func (r *pgxAppointmentRepository) ListByDateRange(ctx context.Context, from, to time.Time, skip, limit int) ([]model.Appointment, error) {
	return r.store.ListWhere(ctx, "scheduled_date >= $1 AND scheduled_date <= $2", []any{from, to}, skip, limit)
}

func (r *pgxAppointmentRepository) ListByStatus(ctx context.Context, status model.AppointmentStatus, skip, limit int) ([]model.Appointment, error) {
	return r.store.ListWhere(ctx, "status = $1::appointment_status", []any{string(status)}, skip, limit)
}

func (r *pgxAppointmentRepository) Create(ctx context.Context, in model.AppointmentCreate) (model.Appointment, error) {
	var zero model.Appointment

	status := model.AppointmentScheduled
	if in.Status != nil {
		status = *in.Status
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx)

	appt, err := r.store.WithTx(tx).Insert(ctx,
		[]string{"customer_id", "staff_id", "service_id", "scheduled_date", "end_date", "status", "notes", "internal_notes"},
		[]any{in.CustomerID, in.StaffID, in.ServiceID, in.ScheduledDate, in.EndDate, string(status), in.Notes, in.InternalNotes},
	)
	if err != nil {
		return zero, err
	}
	if err := r.emit(ctx, tx, "appointment.created", appt); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return appt, nil
}

func (r *pgxAppointmentRepository) Update(ctx context.Context, id int64, in model.AppointmentUpdate) (model.Appointment, error) {
	var zero model.Appointment

	var ch Changes
	if in.CustomerID != nil {
		ch.Set("customer_id", *in.CustomerID)
	}
	if in.StaffID != nil {
		ch.Set("staff_id", *in.StaffID)
	}
	if in.ServiceID != nil {
		ch.Set("service_id", *in.ServiceID)
	}
	if in.ScheduledDate != nil {
		ch.Set("scheduled_date", *in.ScheduledDate)
	}
	if in.EndDate != nil {
		ch.Set("end_date", *in.EndDate)
	}
	if in.Status != nil {
		ch.Set("status", string(*in.Status))
	}
	if in.Notes != nil {
		ch.Set("notes", *in.Notes)
	}
	if in.InternalNotes != nil {
		ch.Set("internal_notes", *in.InternalNotes)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx)

	appt, err := r.store.WithTx(tx).Update(ctx, id, &ch)
	if err != nil {
		return zero, err
	}
	if !ch.Empty() {
		if err := r.emit(ctx, tx, "appointment.updated", appt); err != nil {
			return zero, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return appt, nil
}

func (r *pgxAppointmentRepository) Delete(ctx context.Context, id int64) (model.Appointment, error) {
	var zero model.Appointment

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx)

	appt, err := r.store.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := r.emit(ctx, tx, "appointment.deleted", appt); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return appt, nil
}

func (r *pgxAppointmentRepository) emit(ctx context.Context, tx pgx.Tx, eventType string, appt model.Appointment) error {
	payload, err := json.Marshal(appt)
	if err != nil {
		return err
	}
	return r.events.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   strconv.FormatInt(appt.ID, 10),
		EventType:     eventType,
		Payload:       payload,
	})
}
