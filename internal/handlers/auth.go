package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmelnyk-dev/salonbook/internal/auth"
	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type AuthHandler struct {
	users  storage.UserRepository
	signer *auth.Signer
	logger *slog.Logger
}

func NewAuthHandler(users storage.UserRepository, signer *auth.Signer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, signer: signer, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login exchanges credentials for a bearer token. It accepts a JSON body or
// an OAuth2-style form (username/password fields). Credentials are checked
// here; account state is enforced by the middleware on protected routes.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if storage.IsNotFound(err) {
			httpx.Unauthorized(w, "incorrect email or password")
			return
		}
		h.logger.Error("login lookup", "err", err)
		httpx.Internal(w)
		return
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		httpx.Unauthorized(w, "incorrect email or password")
		return
	}

	token, err := h.signer.Sign(user.Email)
	if err != nil {
		h.logger.Error("sign token", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) credentials(w http.ResponseWriter, r *http.Request) (email, password string, ok bool) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json body")
			return "", "", false
		}
		email, password = req.Email, req.Password
	} else {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			httpx.BadRequest(w, "invalid form body")
			return "", "", false
		}
		email = r.PostFormValue("username")
		password = r.PostFormValue("password")
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		httpx.BadRequest(w, "missing credentials")
		return "", "", false
	}
	return email, password, true
}

// Register creates a new account. The email is pre-checked so a duplicate is
// reported as a conflict rather than surfacing as a constraint error.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, "invalid json body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.BadRequest(w, "email and password are required")
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "conflict", "email already registered")
		return
	} else if !storage.IsNotFound(err) {
		h.logger.Error("register lookup", "err", err)
		httpx.Internal(w)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", "err", err)
		httpx.Internal(w)
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, req.FullName, hashed, false)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			httpx.WriteError(w, http.StatusBadRequest, "conflict", "email already registered")
			return
		}
		h.logger.Error("create user", "err", err)
		httpx.Internal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w, "missing credentials")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}
