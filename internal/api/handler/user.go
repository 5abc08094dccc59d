package handler

import (
	"encoding/json"
	"net/http"

	"github.com/orbitwise/fdsaas/internal/api/middleware"
	"github.com/orbitwise/fdsaas/internal/api/request"
	"github.com/orbitwise/fdsaas/internal/api/response"
	"github.com/orbitwise/fdsaas/internal/services/auth"
)

// UserHandler handles registration and session endpoints
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Register handles PUT /fdsaas/api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	userID, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegisterResponse{UserID: string(userID)})
}

// Login handles POST /fdsaas/api/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}
	if req.Timestamp == 0 {
		WriteError(w, NewInvalidRequestError("timestamp is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password, req.Timestamp)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponseFromSession(session))
}

// Logout handles GET and DELETE /fdsaas/api/logout. The envelope has already
// been validated, so this just destroys the session it names.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	envelope := middleware.GetEnvelope(r.Context())

	if err := h.authService.Logout(session.UserID, session.Token, envelope.Timestamp); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{UserID: string(session.UserID)})
}

// Deregister handles DELETE /fdsaas/api/deregister
func (h *UserHandler) Deregister(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	if err := h.authService.Deregister(r.Context(), session.UserID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{UserID: string(session.UserID)})
}
