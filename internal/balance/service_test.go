package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinxesplit/api/internal/balance/ledger"
	"github.com/pinxesplit/api/internal/expense"
	"github.com/pinxesplit/api/internal/group"
)

type fakeStore struct {
	groupExpenses map[string][]ledger.ExpenseRecord
	userExpenses  map[string][]ledger.ExpenseRecord
}

func (f *fakeStore) GroupExpenses(_ context.Context, groupID string) ([]ledger.ExpenseRecord, error) {
	return f.groupExpenses[groupID], nil
}

func (f *fakeStore) UserExpenses(_ context.Context, userID string) ([]ledger.ExpenseRecord, error) {
	return f.userExpenses[userID], nil
}

type fakeGroupService struct {
	members map[string][]string
}

func (f *fakeGroupService) GetMembers(_ context.Context, groupID, requesterID string) ([]*group.GroupMember, error) {
	userIDs, ok := f.members[groupID]
	if !ok {
		return nil, group.ErrGroupNotFound
	}

	isMember := false
	for _, id := range userIDs {
		if id == requesterID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, group.ErrGroupNotFound
	}

	members := make([]*group.GroupMember, len(userIDs))
	for i, id := range userIDs {
		members[i] = &group.GroupMember{GroupID: groupID, UserID: id}
	}
	return members, nil
}

type fakeSettlementRecorder struct {
	recorded []*expense.Expense
}

func (f *fakeSettlementRecorder) CreateSettlement(_ context.Context, payerID, groupID, recipientID string, amount int64, currency string) (*expense.ExpenseWithSplits, error) {
	e := &expense.Expense{
		GroupID:   groupID,
		PaidByID:  payerID,
		Amount:    amount,
		Currency:  currency,
		IsPayment: true,
	}
	f.recorded = append(f.recorded, e)
	return &expense.ExpenseWithSplits{
		Expense: e,
		Splits: []*expense.Split{
			{UserID: payerID, OwedShare: 0},
			{UserID: recipientID, OwedShare: amount},
		},
	}, nil
}

func TestGroupBalances(t *testing.T) {
	store := &fakeStore{
		groupExpenses: map[string][]ledger.ExpenseRecord{
			"g1": {
				{
					ID: "e1", GroupID: "g1", Amount: 3000, Currency: "USD", PaidByID: "alice",
					Splits: []ledger.ExpenseSplit{
						{UserID: "alice", OwedShare: 1000},
						{UserID: "bob", OwedShare: 1000},
						{UserID: "carol", OwedShare: 1000},
					},
				},
			},
		},
	}
	groups := &fakeGroupService{members: map[string][]string{
		"g1": {"alice", "bob", "carol"},
	}}
	svc := NewService(store, groups, &fakeSettlementRecorder{})

	t.Run("computes balances for a member", func(t *testing.T) {
		resp, err := svc.GroupBalances(context.Background(), "g1", "bob")
		require.NoError(t, err)

		assert.Equal(t, "g1", resp.GroupID)
		assert.Equal(t, []ledger.NetBalance{
			{UserID: "alice", Currency: "USD", Amount: 2000},
			{UserID: "bob", Currency: "USD", Amount: -1000},
			{UserID: "carol", Currency: "USD", Amount: -1000},
		}, resp.Balances)
		assert.Len(t, resp.Debts, 2)
		assert.Len(t, resp.SimplifiedDebts, 2)
	})

	t.Run("non-members cannot see the group", func(t *testing.T) {
		_, err := svc.GroupBalances(context.Background(), "g1", "mallory")
		assert.ErrorIs(t, err, group.ErrGroupNotFound)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := svc.GroupBalances(context.Background(), "nope", "alice")
		assert.ErrorIs(t, err, group.ErrGroupNotFound)
	})
}

func TestOverallBalances(t *testing.T) {
	store := &fakeStore{
		userExpenses: map[string][]ledger.ExpenseRecord{
			"bob": {
				{
					ID: "e1", GroupID: "g1", Amount: 2000, Currency: "USD", PaidByID: "alice",
					Splits: []ledger.ExpenseSplit{
						{UserID: "alice", OwedShare: 1000},
						{UserID: "bob", OwedShare: 1000},
					},
				},
				{
					ID: "e2", GroupID: "g2", Amount: 500, Currency: "JPY", PaidByID: "bob",
					Splits: []ledger.ExpenseSplit{
						{UserID: "bob", OwedShare: 250},
						{UserID: "carol", OwedShare: 250},
					},
				},
			},
		},
	}
	svc := NewService(store, &fakeGroupService{}, &fakeSettlementRecorder{})

	balances, err := svc.OverallBalances(context.Background(), "bob")
	require.NoError(t, err)

	assert.Equal(t, []OverallBalanceResponse{
		{Currency: "USD", Amount: -1000, Display: "-$10.00"},
		{Currency: "JPY", Amount: 250, Display: "¥250"},
	}, balances)
}

func TestSettleUp(t *testing.T) {
	groups := &fakeGroupService{members: map[string][]string{
		"g1": {"alice", "bob"},
	}}

	t.Run("records a payment expense", func(t *testing.T) {
		recorder := &fakeSettlementRecorder{}
		svc := NewService(&fakeStore{}, groups, recorder)

		result, err := svc.SettleUp(context.Background(), "bob", &SettleUpRequest{
			GroupID:     "g1",
			RecipientID: "alice",
			Amount:      1500,
			Currency:    "USD",
		})
		require.NoError(t, err)

		require.Len(t, recorder.recorded, 1)
		assert.True(t, result.Expense.IsPayment)
		assert.Equal(t, "bob", result.Expense.PaidByID)

		require.Len(t, result.Splits, 2)
		assert.Equal(t, int64(0), result.Splits[0].OwedShare)
		assert.Equal(t, int64(1500), result.Splits[1].OwedShare)
	})

	t.Run("rejects self settlement", func(t *testing.T) {
		svc := NewService(&fakeStore{}, groups, &fakeSettlementRecorder{})

		_, err := svc.SettleUp(context.Background(), "bob", &SettleUpRequest{
			GroupID:     "g1",
			RecipientID: "bob",
			Amount:      1500,
		})
		assert.ErrorIs(t, err, ErrSelfSettlement)
	})
}
