package storage

import (
	"context"

	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/model"
)

const serviceCols = `id, name, description, price::text AS price, duration_minutes, is_active, created_at, updated_at`

type ServiceRepository interface {
	Get(ctx context.Context, id int64) (model.Service, error)
	List(ctx context.Context, skip, limit int) ([]model.Service, error)
	ListActive(ctx context.Context, skip, limit int) ([]model.Service, error)
	GetByName(ctx context.Context, name string) (model.Service, error)
	Create(ctx context.Context, in model.ServiceCreate) (model.Service, error)
	Update(ctx context.Context, id int64, in model.ServiceUpdate) (model.Service, error)
	Delete(ctx context.Context, id int64) (model.Service, error)
}

type pgxServiceRepository struct {
	store *Store[model.Service]
}

func NewServiceRepository(pool *db.Pool) ServiceRepository {
	return &pgxServiceRepository{
		store: NewStore[model.Service](pool, "services", serviceCols),
	}
}

func (r *pgxServiceRepository) Get(ctx context.Context, id int64) (model.Service, error) {
	return r.store.Get(ctx, id)
}

func (r *pgxServiceRepository) List(ctx context.Context, skip, limit int) ([]model.Service, error) {
	return r.store.List(ctx, skip, limit)
}

func (r *pgxServiceRepository) ListActive(ctx context.Context, skip, limit int) ([]model.Service, error) {
	return r.store.ListWhere(ctx, "is_active", nil, skip, limit)
}

func (r *pgxServiceRepository) GetByName(ctx context.Context, name string) (model.Service, error) {
	return r.store.One(ctx, "name = $1", name)
}

func (r *pgxServiceRepository) Create(ctx context.Context, in model.ServiceCreate) (model.Service, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return r.store.Insert(ctx,
		[]string{"name", "description", "price", "duration_minutes", "is_active"},
		[]any{in.Name, in.Description, in.Price, in.DurationMinutes, active},
	)
}

func (r *pgxServiceRepository) Update(ctx context.Context, id int64, in model.ServiceUpdate) (model.Service, error) {
	var ch Changes
	if in.Name != nil {
		ch.Set("name", *in.Name)
	}
	if in.Description != nil {
		ch.Set("description", *in.Description)
	}
	if in.Price != nil {
		ch.Set("price", *in.Price)
	}
	if in.DurationMinutes != nil {
		ch.Set("duration_minutes", *in.DurationMinutes)
	}
	if in.IsActive != nil {
		ch.Set("is_active", *in.IsActive)
	}
	return r.store.Update(ctx, id, &ch)
}

func (r *pgxServiceRepository) Delete(ctx context.Context, id int64) (model.Service, error) {
	return r.store.Delete(ctx, id)
}
