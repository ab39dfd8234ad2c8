package model

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentInProgress, AppointmentCompleted,
		AppointmentCancelled, AppointmentNoShow:
		return true
	default:
		return false
	}
}

type Appointment struct {
	ID            int64             `db:"id" json:"id"`
	CustomerID    int64             `db:"customer_id" json:"customer_id"`
	StaffID       int64             `db:"staff_id" json:"staff_id"`
	ServiceID     int64             `db:"service_id" json:"service_id"`
	ScheduledDate time.Time         `db:"scheduled_date" json:"scheduled_date"`
	EndDate       *time.Time        `db:"end_date" json:"end_date"`
	Status        AppointmentStatus `db:"status" json:"status"`
	Notes         *string           `db:"notes" json:"notes"`
	InternalNotes *string           `db:"internal_notes" json:"internal_notes"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time        `db:"updated_at" json:"updated_at"`
}

type AppointmentCreate struct {
	CustomerID    int64              `json:"customer_id"`
	StaffID       int64              `json:"staff_id"`
	ServiceID     int64              `json:"service_id"`
	ScheduledDate time.Time          `json:"scheduled_date"`
	EndDate       *time.Time         `json:"end_date"`
	Status        *AppointmentStatus `json:"status"`
	Notes         *string            `json:"notes"`
	InternalNotes *string            `json:"internal_notes"`
}

// AppointmentUpdate is a partial payload: nil fields are left untouched.
type AppointmentUpdate struct {
	CustomerID    *int64             `json:"customer_id"`
	StaffID       *int64             `json:"staff_id"`
	ServiceID     *int64             `json:"service_id"`
	ScheduledDate *time.Time         `json:"scheduled_date"`
	EndDate       *time.Time         `json:"end_date"`
	Status        *AppointmentStatus `json:"status"`
	Notes         *string            `json:"notes"`
	InternalNotes *string            `json:"internal_notes"`
}
