package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinxesplit/api/internal/currency"
	"github.com/pinxesplit/api/internal/expense/split"
	"github.com/pinxesplit/api/internal/group"
)

// Common errors
var (
	ErrExpenseNotFound        = errors.New("expense not found")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrNotGroupMember         = errors.New("user is not a member of this group")
	ErrDuplicateParticipant   = errors.New("duplicate participant")
	ErrNotExpenseOwner        = errors.New("only the payer or creator can delete an expense")
	ErrUnallocatedRemainder   = errors.New("split leaves an unallocated remainder; include the expense creator as a participant")
	ErrCannotModifySettlement = errors.New("settlement payments cannot be deleted here")
)

// GroupService is the subset of group operations the expense service needs
type GroupService interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
	GetMembers(ctx context.Context, groupID, requesterID string) ([]*group.GroupMember, error)
}

// Store persists expenses and their splits
type Store interface {
	CreateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error)
	GetExpenseByID(ctx context.Context, id string) (*Expense, error)
	GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error)
	ListExpensesByGroupID(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error)
	SoftDeleteExpense(ctx context.Context, id string) error
}

// Service handles expense business logic
type Service struct {
	repo         Store
	groups       GroupService
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo Store, groups GroupService, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		groups:       groups,
		splitFactory: splitFactory,
	}
}

// CreateExpense creates a new expense and its splits in one transaction.
// The owed shares are calculated with the strategy named by SplitType; any
// indivisible remainder goes to the creator. Every participant and the
// payer must be a member of the group.
func (s *Service) CreateExpense(ctx context.Context, creatorID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	grp, err := s.groups.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	// GetMembers enforces that the creator belongs to the group
	members, err := s.groups.GetMembers(ctx, req.GroupID, creatorID)
	if err != nil {
		return nil, err
	}
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.UserID] = true
	}

	if req.Currency == "" {
		req.Currency = grp.Currency
	}
	if !currency.IsSupported(req.Currency) {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, req.Currency)
	}

	if req.PaidByID == "" {
		req.PaidByID = creatorID
	}
	if !memberSet[req.PaidByID] {
		return nil, fmt.Errorf("%w: payer %s", ErrNotGroupMember, req.PaidByID)
	}

	seen := make(map[string]bool, len(req.Participants))
	participants := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		if !memberSet[p.UserID] {
			return nil, fmt.Errorf("%w: %s", ErrNotGroupMember, p.UserID)
		}
		if seen[p.UserID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = true
		participants[i] = p.ToParticipant()
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.Amount, creatorID, participants)
	if err != nil {
		return nil, err
	}

	// The ledger depends on shares summing to the amount exactly. The only
	// way a strategy comes up short is a rounding remainder with no creator
	// in the participant list to absorb it.
	var sum int64
	for _, share := range shares {
		sum += share
	}
	if sum != req.Amount {
		return nil, fmt.Errorf("%w (allocated %d of %d)", ErrUnallocatedRemainder, sum, req.Amount)
	}

	// Preserve request order for the split rows
	splits := make([]*Split, len(req.Participants))
	for i, p := range req.Participants {
		splits[i] = &Split{UserID: p.UserID, OwedShare: shares[p.UserID]}
	}

	return s.repo.CreateExpense(ctx, &Expense{
		GroupID:     req.GroupID,
		CreatedByID: creatorID,
		PaidByID:    req.PaidByID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SplitType:   req.SplitType,
	}, splits)
}

// CreateSettlement records a settle-up payment from payerID to recipientID
// as a payment expense: the payer's owed share is zero and the recipient's
// equals the full amount, so the payment cancels existing debt between the
// pair without creating new debt.
func (s *Service) CreateSettlement(ctx context.Context, payerID, groupID, recipientID string, amount int64, curr string) (*ExpenseWithSplits, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	grp, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.GetMembers(ctx, groupID, payerID)
	if err != nil {
		return nil, err
	}
	isMember := false
	for _, m := range members {
		if m.UserID == recipientID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, fmt.Errorf("%w: %s", ErrNotGroupMember, recipientID)
	}

	if curr == "" {
		curr = grp.Currency
	}
	if !currency.IsSupported(curr) {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, curr)
	}

	return s.repo.CreateExpense(ctx, &Expense{
		GroupID:     groupID,
		CreatedByID: payerID,
		PaidByID:    payerID,
		Description: "Settle up",
		Amount:      amount,
		Currency:    curr,
		SplitType:   string(split.TypeExact),
		IsPayment:   true,
	}, []*Split{
		{UserID: payerID, OwedShare: 0},
		{UserID: recipientID, OwedShare: amount},
	})
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id string) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// ListExpensesByGroupID retrieves active expenses for a group the requester
// belongs to
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID, requesterID string, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.groups.GetMembers(ctx, groupID, requesterID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// DeleteExpense soft-deletes an expense so it stops counting toward balances.
// Only the payer or the creator may delete, and settle-up payments are
// excluded so settled history cannot silently vanish.
func (s *Service) DeleteExpense(ctx context.Context, id, userID string) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PaidByID != userID && expense.CreatedByID != userID {
		return ErrNotExpenseOwner
	}
	if expense.IsPayment {
		return ErrCannotModifySettlement
	}

	return s.repo.SoftDeleteExpense(ctx, id)
}
