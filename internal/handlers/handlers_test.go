package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmelnyk-dev/salonbook/internal/auth"
	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func window[E any](items []E, skip, limit int) []E {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if skip >= len(items) {
		return []E{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]E, end-skip)
	copy(out, items[skip:end])
	return out
}

type fakeCustomerRepo struct {
	seq   int64
	items []model.Customer
}

func (f *fakeCustomerRepo) Get(_ context.Context, id int64) (model.Customer, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, storage.ErrNotFound
}

func (f *fakeCustomerRepo) List(_ context.Context, skip, limit int) ([]model.Customer, error) {
	return window(f.items, skip, limit), nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (model.Customer, error) {
	for _, c := range f.items {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Customer{}, storage.ErrNotFound
}

func (f *fakeCustomerRepo) Create(_ context.Context, in model.CustomerCreate) (model.Customer, error) {
	f.seq++
	c := model.Customer{
		ID:        f.seq,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
	}
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, id int64, in model.CustomerUpdate) (model.Customer, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		c := &f.items[i]
		touched := false
		if in.FirstName != nil {
			c.FirstName, touched = *in.FirstName, true
		}
		if in.LastName != nil {
			c.LastName, touched = *in.LastName, true
		}
		if in.Email != nil {
			c.Email, touched = *in.Email, true
		}
		if in.Phone != nil {
			c.Phone, touched = *in.Phone, true
		}
		if in.Address != nil {
			c.Address, touched = *in.Address, true
		}
		if in.City != nil {
			c.City, touched = *in.City, true
		}
		if in.State != nil {
			c.State, touched = *in.State, true
		}
		if in.ZipCode != nil {
			c.ZipCode, touched = *in.ZipCode, true
		}
		if in.Notes != nil {
			c.Notes, touched = in.Notes, true
		}
		if touched {
			now := time.Now().UTC()
			c.UpdatedAt = &now
		}
		return *c, nil
	}
	return model.Customer{}, storage.ErrNotFound
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) (model.Customer, error) {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return c, nil
		}
	}
	return model.Customer{}, storage.ErrNotFound
}

type fakeStaffRepo struct {
	seq   int64
	items []model.Staff
}

func (f *fakeStaffRepo) Get(_ context.Context, id int64) (model.Staff, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Staff{}, storage.ErrNotFound
}

func (f *fakeStaffRepo) List(_ context.Context, skip, limit int) ([]model.Staff, error) {
	return window(f.items, skip, limit), nil
}

func (f *fakeStaffRepo) ListActive(_ context.Context, skip, limit int) ([]model.Staff, error) {
	var active []model.Staff
	for _, s := range f.items {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return window(active, skip, limit), nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (model.Staff, error) {
	for _, s := range f.items {
		if s.Email == email {
			return s, nil
		}
	}
	return model.Staff{}, storage.ErrNotFound
}

func (f *fakeStaffRepo) Create(_ context.Context, in model.StaffCreate) (model.Staff, error) {
	f.seq++
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	s := model.Staff{
		ID:         f.seq,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		HourlyRate: in.HourlyRate,
		IsActive:   active,
		HireDate:   in.HireDate,
		Notes:      in.Notes,
		CreatedAt:  time.Now().UTC(),
	}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, id int64, in model.StaffUpdate) (model.Staff, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		s := &f.items[i]
		if in.FirstName != nil {
			s.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			s.LastName = *in.LastName
		}
		if in.Email != nil {
			s.Email = *in.Email
		}
		if in.Position != nil {
			s.Position = *in.Position
		}
		if in.HourlyRate != nil {
			s.HourlyRate = in.HourlyRate
		}
		if in.IsActive != nil {
			s.IsActive = *in.IsActive
		}
		return *s, nil
	}
	return model.Staff{}, storage.ErrNotFound
}

func (f *fakeStaffRepo) Delete(_ context.Context, id int64) (model.Staff, error) {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return s, nil
		}
	}
	return model.Staff{}, storage.ErrNotFound
}

type fakeServiceRepo struct {
	seq   int64
	items []model.Service
}

func (f *fakeServiceRepo) Get(_ context.Context, id int64) (model.Service, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Service{}, storage.ErrNotFound
}

func (f *fakeServiceRepo) List(_ context.Context, skip, limit int) ([]model.Service, error) {
	return window(f.items, skip, limit), nil
}

func (f *fakeServiceRepo) ListActive(_ context.Context, skip, limit int) ([]model.Service, error) {
	var active []model.Service
	for _, s := range f.items {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return window(active, skip, limit), nil
}

func (f *fakeServiceRepo) GetByName(_ context.Context, name string) (model.Service, error) {
	for _, s := range f.items {
		if s.Name == name {
			return s, nil
		}
	}
	return model.Service{}, storage.ErrNotFound
}

func (f *fakeServiceRepo) Create(_ context.Context, in model.ServiceCreate) (model.Service, error) {
	f.seq++
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	s := model.Service{
		ID:              f.seq,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		IsActive:        active,
		CreatedAt:       time.Now().UTC(),
	}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, id int64, in model.ServiceUpdate) (model.Service, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		s := &f.items[i]
		if in.Name != nil {
			s.Name = *in.Name
		}
		if in.Description != nil {
			s.Description = in.Description
		}
		if in.Price != nil {
			s.Price = *in.Price
		}
		if in.DurationMinutes != nil {
			s.DurationMinutes = *in.DurationMinutes
		}
		if in.IsActive != nil {
			s.IsActive = *in.IsActive
		}
		return *s, nil
	}
	return model.Service{}, storage.ErrNotFound
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) (model.Service, error) {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return s, nil
		}
	}
	return model.Service{}, storage.ErrNotFound
}

type fakeAppointmentRepo struct {
	seq   int64
	items []model.Appointment
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id int64) (model.Appointment, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Appointment{}, storage.ErrNotFound
}

func (f *fakeAppointmentRepo) List(_ context.Context, skip, limit int) ([]model.Appointment, error) {
	return window(f.items, skip, limit), nil
}

func (f *fakeAppointmentRepo) ListByCustomer(_ context.Context, customerID int64, skip, limit int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.items {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return window(out, skip, limit), nil
}

func (f *fakeAppointmentRepo) ListByStaff(_ context.Context, staffID int64, skip, limit int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.items {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return window(out, skip, limit), nil
}

func (f *fakeAppointmentRepo) ListByDateRange(_ context.Context, from, to time.Time, skip, limit int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.items {
		if !a.ScheduledDate.Before(from) && !a.ScheduledDate.After(to) {
			out = append(out, a)
		}
	}
	return window(out, skip, limit), nil
}

func (f *fakeAppointmentRepo) ListByStatus(_ context.Context, status model.AppointmentStatus, skip, limit int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.items {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return window(out, skip, limit), nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, in model.AppointmentCreate) (model.Appointment, error) {
	f.seq++
	status := model.AppointmentScheduled
	if in.Status != nil {
		status = *in.Status
	}
	a := model.Appointment{
		ID:            f.seq,
		CustomerID:    in.CustomerID,
		StaffID:       in.StaffID,
		ServiceID:     in.ServiceID,
		ScheduledDate: in.ScheduledDate,
		EndDate:       in.EndDate,
		Status:        status,
		Notes:         in.Notes,
		InternalNotes: in.InternalNotes,
		CreatedAt:     time.Now().UTC(),
	}
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, id int64, in model.AppointmentUpdate) (model.Appointment, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		a := &f.items[i]
		if in.CustomerID != nil {
			a.CustomerID = *in.CustomerID
		}
		if in.StaffID != nil {
			a.StaffID = *in.StaffID
		}
		if in.ServiceID != nil {
			a.ServiceID = *in.ServiceID
		}
		if in.ScheduledDate != nil {
			a.ScheduledDate = *in.ScheduledDate
		}
		if in.EndDate != nil {
			a.EndDate = in.EndDate
		}
		if in.Status != nil {
			a.Status = *in.Status
		}
		if in.Notes != nil {
			a.Notes = in.Notes
		}
		if in.InternalNotes != nil {
			a.InternalNotes = in.InternalNotes
		}
		return *a, nil
	}
	return model.Appointment{}, storage.ErrNotFound
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) (model.Appointment, error) {
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return a, nil
		}
	}
	return model.Appointment{}, storage.ErrNotFound
}

type fakeUserRepo struct {
	seq   int64
	items []model.User
}

func (f *fakeUserRepo) Get(_ context.Context, id int64) (model.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, storage.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, storage.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, email, fullName, hashedPassword string, isAdmin bool) (model.User, error) {
	f.seq++
	u := model.User{
		ID:             f.seq,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		IsAdmin:        isAdmin,
		CreatedAt:      time.Now().UTC(),
	}
	f.items = append(f.items, u)
	return u, nil
}

// testRouter assembles the /api/v1 mux the way the server binary does, so
// end-to-end tests exercise routing, the auth gate and the handlers together.
func testRouter(signer *auth.Signer, users storage.UserRepository, customers storage.CustomerRepository, appointments storage.AppointmentRepository) http.Handler {
	logger := testLogger()
	authHandler := NewAuthHandler(users, signer, logger)
	customerHandler := NewCustomerHandler(customers, logger)
	appointmentHandler := NewAppointmentHandler(appointments, logger)

	protect := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, auth.RequireUser(signer, users), auth.RequireActive)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.Handle("GET /api/v1/auth/me", protect(authHandler.Me))

	mux.Handle("GET /api/v1/customers/{$}", protect(customerHandler.List))
	mux.Handle("POST /api/v1/customers/{$}", protect(customerHandler.Create))
	mux.Handle("GET /api/v1/customers/{id}", protect(customerHandler.Get))
	mux.Handle("PUT /api/v1/customers/{id}", protect(customerHandler.Update))
	mux.Handle("DELETE /api/v1/customers/{id}", protect(customerHandler.Delete))

	mux.Handle("GET /api/v1/appointments/{$}", protect(appointmentHandler.List))
	mux.Handle("POST /api/v1/appointments/{$}", protect(appointmentHandler.Create))
	mux.Handle("GET /api/v1/appointments/{id}", protect(appointmentHandler.Get))
	mux.Handle("PUT /api/v1/appointments/{id}", protect(appointmentHandler.Update))
	mux.Handle("DELETE /api/v1/appointments/{id}", protect(appointmentHandler.Delete))

	return mux
}
