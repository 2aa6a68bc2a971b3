package http

import (
	"context"
	"net/http"
	"time"

	"github.com/realtyhub/backend/internal/auth/service"
	commonhttp "github.com/realtyhub/backend/internal/common/http"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/user/domain"
)

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type signinResponse struct {
	Message string         `json:"message"`
	User    domain.Summary `json:"user"`
	Token   string         `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	auth    *service.AuthService
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{auth: auth, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/signin", h.signin)
	mux.HandleFunc("/v1/auth/signup", h.signup)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signinRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signin failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.SignIn(ctx, service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, signinResponse{
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	_, err := h.auth.SignUp(ctx, service.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, messageResponse{
		Message: "User created successfully",
	})
}
