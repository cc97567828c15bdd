package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pinxesplit/api/pkg/middleware"
	"github.com/pinxesplit/api/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Get("/{id}/members", h.GetMembers)
	r.Post("/{id}/members", h.AddMember)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group with a default currency; the creator becomes its owner
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Group name is required")
		return
	}

	group, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCurrency) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// List handles GET /groups
// @Summary      List the authenticated user's groups
// @Tags         groups
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	groups, total, err := h.service.ListByUserID(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	groupResponses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		groupResponses[i] = g.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, groupResponses, meta)
}

// GetByID handles GET /groups/{id}
// @Summary      Get a group with its members
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	group, members, err := h.service.GetByIDWithMembers(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	groupResp := group.ToResponse()
	groupResp.Members = make([]*MemberResponse, len(members))
	for i, m := range members {
		groupResp.Members[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, groupResp)
}

// Update handles PUT /groups/{id}
// @Summary      Update a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        request body UpdateGroupRequest true "Group update request"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Delete handles DELETE /groups/{id}
// @Summary      Delete a group
// @Description  Soft-delete a group; its expenses stop counting toward balances
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotAuthorized):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete group")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// GetMembers handles GET /groups/{id}/members
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	members, err := h.service.GetMembers(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get members")
		return
	}

	memberResponses := make([]*MemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, memberResponses)
}

// AddMember handles POST /groups/{id}/members
// @Summary      Add a member to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        request body AddMemberRequest true "Member addition request"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" {
		response.BadRequest(w, "user_id is required")
		return
	}

	member, err := h.service.AddMember(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrMemberAlreadyExists):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to add member")
		}
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// RemoveMember handles DELETE /groups/{id}/members/{userId}
// @Summary      Remove a member from a group
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        userId path string true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	err := h.service.RemoveMember(r.Context(), chi.URLParam(r, "id"), userID, chi.URLParam(r, "userId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotAuthorized), errors.Is(err, ErrCannotRemoveOwner):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove member")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}
