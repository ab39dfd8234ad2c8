package storage

import (
	"context"

	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/model"
)

// hourly_rate is NUMERIC; selecting it as text keeps money exact on the wire.
const staffCols = `id, first_name, last_name, email, phone, address, city, state, zip_code, position, hourly_rate::text AS hourly_rate, is_active, hire_date, notes, created_at, updated_at`

type StaffRepository interface {
	Get(ctx context.Context, id int64) (model.Staff, error)
	List(ctx context.Context, skip, limit int) ([]model.Staff, error)
	ListActive(ctx context.Context, skip, limit int) ([]model.Staff, error)
	GetByEmail(ctx context.Context, email string) (model.Staff, error)
	Create(ctx context.Context, in model.StaffCreate) (model.Staff, error)
	Update(ctx context.Context, id int64, in model.StaffUpdate) (model.Staff, error)
	Delete(ctx context.Context, id int64) (model.Staff, error)
}

type pgxStaffRepository struct {
	store *Store[model.Staff]
}

func NewStaffRepository(pool *db.Pool) StaffRepository {
	return &pgxStaffRepository{
		store: NewStore[model.Staff](pool, "staff", staffCols),
	}
}

func (r *pgxStaffRepository) Get(ctx context.Context, id int64) (model.Staff, error) {
	return r.store.Get(ctx, id)
}

func (r *pgxStaffRepository) List(ctx context.Context, skip, limit int) ([]model.Staff, error) {
	return r.store.List(ctx, skip, limit)
}

func (r *pgxStaffRepository) ListActive(ctx context.Context, skip, limit int) ([]model.Staff, error) {
	return r.store.ListWhere(ctx, "is_active", nil, skip, limit)
}

func (r *pgxStaffRepository) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	return r.store.One(ctx, "email = $1", email)
}

func (r *pgxStaffRepository) Create(ctx context.Context, in model.StaffCreate) (model.Staff, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return r.store.Insert(ctx,
		[]string{"first_name", "last_name", "email", "phone", "address", "city", "state", "zip_code", "position", "hourly_rate", "is_active", "hire_date", "notes"},
		[]any{in.FirstName, in.LastName, in.Email, in.Phone, in.Address, in.City, in.State, in.ZipCode, in.Position, in.HourlyRate, active, in.HireDate, in.Notes},
	)
}

func (r *pgxStaffRepository) Update(ctx context.Context, id int64, in model.StaffUpdate) (model.Staff, error) {
	var ch Changes
	if in.FirstName != nil {
		ch.Set("first_name", *in.FirstName)
	}
	if in.LastName != nil {
		ch.Set("last_name", *in.LastName)
	}
	if in.Email != nil {
		ch.Set("email", *in.Email)
	}
	if in.Phone != nil {
		ch.Set("phone", *in.Phone)
	}
	if in.Address != nil {
		ch.Set("address", *in.Address)
	}
	if in.City != nil {
		ch.Set("city", *in.City)
	}
	if in.State != nil {
		ch.Set("state", *in.State)
	}
	if in.ZipCode != nil {
		ch.Set("zip_code", *in.ZipCode)
	}
	if in.Position != nil {
		ch.Set("position", *in.Position)
	}
	if in.HourlyRate != nil {
		ch.Set("hourly_rate", *in.HourlyRate)
	}
	if in.IsActive != nil {
		ch.Set("is_active", *in.IsActive)
	}
	if in.HireDate != nil {
		ch.Set("hire_date", *in.HireDate)
	}
	if in.Notes != nil {
		ch.Set("notes", *in.Notes)
	}
	return r.store.Update(ctx, id, &ch)
}

func (r *pgxStaffRepository) Delete(ctx context.Context, id int64) (model.Staff, error) {
	return r.store.Delete(ctx, id)
}
