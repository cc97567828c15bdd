package balance

import (
	"context"
	"errors"

	"github.com/pinxesplit/api/internal/balance/ledger"
	"github.com/pinxesplit/api/internal/expense"
	"github.com/pinxesplit/api/internal/group"
)

// Common errors
var (
	ErrSelfSettlement = errors.New("cannot settle up with yourself")
)

// Store loads expense history for balance computation
type Store interface {
	GroupExpenses(ctx context.Context, groupID string) ([]ledger.ExpenseRecord, error)
	UserExpenses(ctx context.Context, userID string) ([]ledger.ExpenseRecord, error)
}

// GroupService is the subset of group operations the balance service needs
type GroupService interface {
	GetMembers(ctx context.Context, groupID, requesterID string) ([]*group.GroupMember, error)
}

// SettlementRecorder records settle-up payments as payment expenses
type SettlementRecorder interface {
	CreateSettlement(ctx context.Context, payerID, groupID, recipientID string, amount int64, currency string) (*expense.ExpenseWithSplits, error)
}

// Service computes balances on demand. Balances are never persisted; they
// are derived from the active expense history on every query.
type Service struct {
	store       Store
	groups      GroupService
	settlements SettlementRecorder
}

// NewService creates a new balance service
func NewService(store Store, groups GroupService, settlements SettlementRecorder) *Service {
	return &Service{
		store:       store,
		groups:      groups,
		settlements: settlements,
	}
}

// GroupBalances computes the net balances, pairwise debts, and simplified
// transfer plan for a group the requester belongs to.
func (s *Service) GroupBalances(ctx context.Context, groupID, requesterID string) (*GroupBalancesResponse, error) {
	// GetMembers enforces that the requester belongs to the group
	if _, err := s.groups.GetMembers(ctx, groupID, requesterID); err != nil {
		return nil, err
	}

	expenses, err := s.store.GroupExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := ledger.ComputeGroupBalances(expenses)
	return &GroupBalancesResponse{
		GroupID:         groupID,
		Balances:        result.Balances,
		Debts:           result.Debts,
		SimplifiedDebts: result.SimplifiedDebts,
	}, nil
}

// OverallBalances computes the user's per-currency net position across all
// their active groups.
func (s *Service) OverallBalances(ctx context.Context, userID string) ([]OverallBalanceResponse, error) {
	expenses, err := s.store.UserExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toOverallResponses(ledger.ComputeOverallBalances(userID, expenses)), nil
}

// SettleUp records a payment from the requester to another group member.
// The payment is stored as a payment expense, so subsequent balance queries
// pick it up like any other expense.
func (s *Service) SettleUp(ctx context.Context, payerID string, req *SettleUpRequest) (*expense.ExpenseWithSplits, error) {
	if req.RecipientID == payerID {
		return nil, ErrSelfSettlement
	}

	return s.settlements.CreateSettlement(ctx, payerID, req.GroupID, req.RecipientID, req.Amount, req.Currency)
}
