package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmelnyk-dev/salonbook/internal/auth"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := repo.Create(t.Context(), email, "Test User", hashed, false)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if !active {
		for i := range repo.items {
			if repo.items[i].ID == u.ID {
				repo.items[i].IsActive = false
			}
		}
	}
}

func TestLogin_JSONBody(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "ada@example.com", "correct horse", true)
	h := NewAuthHandler(repo, auth.NewSigner("test-secret", time.Hour), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "correct horse"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var tok tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&tok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.AccessToken == "" || tok.TokenType != "bearer" {
		t.Fatalf("unexpected token response %+v", tok)
	}
}

func TestLogin_FormBody(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "ada@example.com", "correct horse", true)
	h := NewAuthHandler(repo, auth.NewSigner("test-secret", time.Hour), testLogger())

	form := url.Values{"username": {"ada@example.com"}, "password": {"correct horse"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "ada@example.com", "correct horse", true)
	h := NewAuthHandler(repo, auth.NewSigner("test-secret", time.Hour), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := NewAuthHandler(&fakeUserRepo{}, auth.NewSigner("test-secret", time.Hour), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email": "ghost@example.com", "password": "whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "ada@example.com", "correct horse", true)
	h := NewAuthHandler(repo, auth.NewSigner("test-secret", time.Hour), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email": "ada@example.com", "password": "another pass"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(repo.items) != 1 {
		t.Fatalf("duplicate register reached the store, %d rows", len(repo.items))
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	h := NewAuthHandler(repo, auth.NewSigner("test-secret", time.Hour), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email": "ada@example.com", "password": "correct horse", "full_name": "Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := repo.items[0]
	if stored.HashedPassword == "correct horse" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword(stored.HashedPassword, "correct horse") {
		t.Fatal("stored hash does not verify")
	}
	if strings.Contains(rec.Body.String(), "hashed_password") {
		t.Fatal("response leaked the password hash")
	}
}
