package http

import (
	"context"
	"net/http"
	"time"

	authservice "github.com/realtyhub/backend/internal/auth/service"
	commonhttp "github.com/realtyhub/backend/internal/common/http"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/user/domain"
	"github.com/realtyhub/backend/internal/user/service"
)

type createUserEntry struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type createUsersResponse struct {
	Message string           `json:"message"`
	Count   int              `json:"count"`
	Users   []domain.Summary `json:"users"`
}

type updateUserRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
}

type Handler struct {
	auth    *authservice.AuthService
	users   *service.Service
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *authservice.AuthService, users *service.Service, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{auth: auth, users: users, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/users/createUsers", h.createUsers)
	mux.HandleFunc("/v1/users/getUsers", h.getUsers)
	mux.HandleFunc("/v1/users/getUser/", h.getUser)
	mux.HandleFunc("/v1/users/updateUser/", h.updateUser)
	mux.HandleFunc("/v1/users/deleteUser/", h.deleteUser)
}

func (h *Handler) createUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var entries []createUserEntry
	if err := commonhttp.DecodeJSON(r, &entries); err != nil {
		h.log.Warnf("create users failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid input: users must be a non-empty array")
		return
	}

	inputs := make([]authservice.SignUpInput, len(entries))
	for i, e := range entries {
		inputs[i] = authservice.SignUpInput{
			FullName: e.FullName,
			Email:    e.Email,
			Address:  e.Address,
			Password: e.Password,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.SignUpBulk(ctx, inputs)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createUsersResponse{
		Message: "Users created successfully",
		Count:   result.Count,
		Users:   result.Users,
	})
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/users/getUser/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "user id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.GetUser(ctx, domain.ID(id))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/users/updateUser/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "user id is required")
		return
	}

	var req updateUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update user failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.UpdateUser(ctx, domain.ID(id), domain.Update{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/users/deleteUser/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "user id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.users.DeleteUser(ctx, domain.ID(id)); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"message": "User deleted successfully"})
}
