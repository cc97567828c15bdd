package balance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinxesplit/api/internal/currency"
	"github.com/pinxesplit/api/internal/expense"
	"github.com/pinxesplit/api/internal/group"
	"github.com/pinxesplit/api/pkg/middleware"
	"github.com/pinxesplit/api/pkg/response"
)

// Handler handles HTTP requests for balance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GroupBalances)
	r.Get("/me", h.OverallBalances)
	r.Post("/settle", h.SettleUp)

	return r
}

// GroupBalances handles GET /balances/group/{groupId}
// @Summary      Get group balances
// @Description  Get per-member net balances, pairwise debts, and the simplified transfer plan for a group. Amounts are in minor currency units; currencies are never mixed.
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.GroupBalances(r.Context(), chi.URLParam(r, "groupId"), userID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// OverallBalances handles GET /balances/me
// @Summary      Get overall balances
// @Description  Get the authenticated user's per-currency net position across all their groups
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]OverallBalanceResponse}
// @Router       /balances/me [get]
func (h *Handler) OverallBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	balances, err := h.service.OverallBalances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// SettleUp handles POST /balances/settle
// @Summary      Settle up with a group member
// @Description  Record a payment from the authenticated user to another member. The payment is stored as a payment expense and cancels debt on the next balance query.
// @Tags         balances
// @Accept       json
// @Produce      json
// @Param        request body SettleUpRequest true "Settle-up request"
// @Success      201 {object} response.APIResponse{data=expense.ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/settle [post]
func (h *Handler) SettleUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SettleUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID == "" || req.RecipientID == "" {
		response.BadRequest(w, "group_id and recipient_id are required")
		return
	}

	result, err := h.service.SettleUp(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrSelfSettlement),
			errors.Is(err, expense.ErrInvalidAmount),
			errors.Is(err, expense.ErrNotGroupMember),
			errors.Is(err, currency.ErrUnsupportedCurrency):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to settle up")
		}
		return
	}

	expenseResp := result.Expense.ToResponse()
	expenseResp.Splits = make([]*expense.SplitResponse, len(result.Splits))
	for i, s := range result.Splits {
		expenseResp.Splits[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, expenseResp)
}
