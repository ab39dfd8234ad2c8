package model

import "time"

type Staff struct {
	ID         int64      `db:"id" json:"id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Email      string     `db:"email" json:"email"`
	Phone      string     `db:"phone" json:"phone"`
	Address    *string    `db:"address" json:"address"`
	City       *string    `db:"city" json:"city"`
	State      *string    `db:"state" json:"state"`
	ZipCode    *string    `db:"zip_code" json:"zip_code"`
	Position   string     `db:"position" json:"position"`
	HourlyRate *string    `db:"hourly_rate" json:"hourly_rate"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	HireDate   *time.Time `db:"hire_date" json:"hire_date"`
	Notes      *string    `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at"`
}

type StaffCreate struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Address    *string    `json:"address"`
	City       *string    `json:"city"`
	State      *string    `json:"state"`
	ZipCode    *string    `json:"zip_code"`
	Position   string     `json:"position"`
	HourlyRate *string    `json:"hourly_rate"`
	IsActive   *bool      `json:"is_active"`
	HireDate   *time.Time `json:"hire_date"`
	Notes      *string    `json:"notes"`
}

// StaffUpdate is a partial payload: nil fields are left untouched.
type StaffUpdate struct {
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	City       *string    `json:"city"`
	State      *string    `json:"state"`
	ZipCode    *string    `json:"zip_code"`
	Position   *string    `json:"position"`
	HourlyRate *string    `json:"hourly_rate"`
	IsActive   *bool      `json:"is_active"`
	HireDate   *time.Time `json:"hire_date"`
	Notes      *string    `json:"notes"`
}
