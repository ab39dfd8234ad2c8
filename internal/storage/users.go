package storage

import (
	"context"

	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/model"
)

const userCols = `id, email, full_name, hashed_password, is_active, is_admin, created_at, updated_at`

type UserRepository interface {
	Get(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, email, fullName, hashedPassword string, isAdmin bool) (model.User, error)
}

type pgxUserRepository struct {
	store *Store[model.User]
}

func NewUserRepository(pool *db.Pool) UserRepository {
	return &pgxUserRepository{
		store: NewStore[model.User](pool, "users", userCols),
	}
}

func (r *pgxUserRepository) Get(ctx context.Context, id int64) (model.User, error) {
	return r.store.Get(ctx, id)
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.store.One(ctx, "email = $1", email)
}

func (r *pgxUserRepository) Create(ctx context.Context, email, fullName, hashedPassword string, isAdmin bool) (model.User, error) {
	return r.store.Insert(ctx,
		[]string{"email", "full_name", "hashed_password", "is_admin"},
		[]any{email, fullName, hashedPassword, isAdmin},
	)
}
