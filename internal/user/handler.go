package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinxesplit/api/pkg/middleware"
	"github.com/pinxesplit/api/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for public user endpoints (no auth required)
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	return r
}

// ProtectedRoutes returns the router for endpoints requiring authentication
func (h *Handler) ProtectedRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)

	return r
}

// Register handles POST /auth/register
// @Summary      Register a new account
// @Description  Create an account and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" {
		response.BadRequest(w, "Email and name are required")
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyInUse):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrWeakPassword):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to register user")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &AuthResponse{Token: token, User: user.ToResponse()})
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Authenticate with email and password, returning a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to log in")
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{Token: token, User: user.ToResponse()})
}

// Me handles GET /users/me
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// UpdateMe handles PUT /users/me
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateUserRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update user")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}
