package model

import "time"

type Service struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description"`
	Price           string     `db:"price" json:"price"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

type ServiceCreate struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Price           string  `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        *bool   `json:"is_active"`
}

// ServiceUpdate is a partial payload: nil fields are left untouched.
type ServiceUpdate struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	DurationMinutes *int    `json:"duration_minutes"`
	IsActive        *bool   `json:"is_active"`
}
