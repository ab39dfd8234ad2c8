package storage

import (
	"context"

	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/model"
)

const customerCols = `id, first_name, last_name, email, phone, address, city, state, zip_code, notes, created_at, updated_at`

// CustomerRepository is the persistence contract consumed by the customer
// handlers; tests substitute an in-memory implementation.
type CustomerRepository interface {
	Get(ctx context.Context, id int64) (model.Customer, error)
	List(ctx context.Context, skip, limit int) ([]model.Customer, error)
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
	Create(ctx context.Context, in model.CustomerCreate) (model.Customer, error)
	Update(ctx context.Context, id int64, in model.CustomerUpdate) (model.Customer, error)
	Delete(ctx context.Context, id int64) (model.Customer, error)
}

type pgxCustomerRepository struct {
	store *Store[model.Customer]
}

func NewCustomerRepository(pool *db.Pool) CustomerRepository {
	return &pgxCustomerRepository{
		store: NewStore[model.Customer](pool, "customers", customerCols),
	}
}

func (r *pgxCustomerRepository) Get(ctx context.Context, id int64) (model.Customer, error) {
	return r.store.Get(ctx, id)
}

func (r *pgxCustomerRepository) List(ctx context.Context, skip, limit int) ([]model.Customer, error) {
	return r.store.List(ctx, skip, limit)
}

func (r *pgxCustomerRepository) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	return r.store.One(ctx, "email = $1", email)
}

func (r *pgxCustomerRepository) Create(ctx context.Context, in model.CustomerCreate) (model.Customer, error) {
	return r.store.Insert(ctx,
		[]string{"first_name", "last_name", "email", "phone", "address", "city", "state", "zip_code", "notes"},
		[]any{in.FirstName, in.LastName, in.Email, in.Phone, in.Address, in.City, in.State, in.ZipCode, in.Notes},
	)
}

func (r *pgxCustomerRepository) Update(ctx context.Context, id int64, in model.CustomerUpdate) (model.Customer, error) {
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
	if in.Notes != nil {
		ch.Set("notes", *in.Notes)
	}
	return r.store.Update(ctx, id, &ch)
}

func (r *pgxCustomerRepository) Delete(ctx context.Context, id int64) (model.Customer, error) {
	return r.store.Delete(ctx, id)
}
