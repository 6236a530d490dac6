package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/port/http/middleware"
	"github.com/plantnet/server/internal/service"
)

type UserHandler struct {
	users *service.UserService
	log   logger.Logger
}

func NewUserHandler(users *service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{users: users, log: log.With("handler", "users")}
}

// GetRole handles GET /users/role/{email}. Unknown users get an empty role
// rather than a 404; the frontend calls this before signup completes.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	role, err := h.users.GetRole(r.Context(), email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]entity.Role{"role": role})
}

// SignUp handles POST /users/{email}: first-seen upsert. A repeat call
// returns the stored record and changes nothing.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var user entity.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user.Email = email

	stored, err := h.users.SignUp(r.Context(), &user)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// RequestVerification handles PATCH /users/{email}.
func (h *UserHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.users.RequestVerification(r.Context(), email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListAll handles GET /all-users/{email}: the admin directory, excluding
// the caller's own record.
func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	users, err := h.users.ListAllExcept(r.Context(), email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// SetRole handles PATCH /user/role/{email}: the admin grants a role and
// marks the account verified.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req struct {
		Role entity.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.SetRoleAndVerify(r.Context(), email, req.Role); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
