package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const staffBody = `{"first_name": "Mara", "last_name": "Voss", "email": "mara@example.com", "phone": "555-0100", "position": "Stylist"}`

func createStaff(t *testing.T, h *StaffHandler, body string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staff/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStaffCreate_MalformedHourlyRate(t *testing.T) {
	repo := &fakeStaffRepo{}
	h := NewStaffHandler(repo, testLogger())

	body := `{"first_name": "Mara", "last_name": "Voss", "email": "mara@example.com", "phone": "555-0100", "position": "Stylist", "hourly_rate": "abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staff/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric hourly_rate, got %d", rec.Code)
	}
	if len(repo.items) != 0 {
		t.Fatalf("malformed hourly_rate reached the store, %d rows", len(repo.items))
	}
}

func TestStaffUpdate_MalformedHourlyRate(t *testing.T) {
	repo := &fakeStaffRepo{}
	h := NewStaffHandler(repo, testLogger())
	createStaff(t, h, staffBody)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/staff/1", strings.NewReader(`{"hourly_rate": "25.5.5"}`))
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed hourly_rate, got %d", rec.Code)
	}
}

func TestStaffUpdate_UnknownIDWithTakenEmail(t *testing.T) {
	repo := &fakeStaffRepo{}
	h := NewStaffHandler(repo, testLogger())
	createStaff(t, h, staffBody)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/staff/999", strings.NewReader(`{"email": "mara@example.com"}`))
	req.SetPathValue("id", "999")
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before the email conflict check, got %d", rec.Code)
	}
}
