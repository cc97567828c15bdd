package expense

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinxesplit/api/internal/currency"
	"github.com/pinxesplit/api/internal/expense/split"
	"github.com/pinxesplit/api/internal/group"
)

type fakeStore struct {
	expenses map[string]*Expense
	splits   map[string][]*Split
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		expenses: make(map[string]*Expense),
		splits:   make(map[string][]*Split),
	}
}

func (f *fakeStore) CreateExpense(_ context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	f.nextID++
	created := *e
	created.ID = "e" + strconv.Itoa(f.nextID)
	created.CreatedAt = time.Now()

	stored := make([]*Split, len(splits))
	for i, s := range splits {
		stored[i] = &Split{ExpenseID: created.ID, UserID: s.UserID, OwedShare: s.OwedShare}
	}

	f.expenses[created.ID] = &created
	f.splits[created.ID] = stored
	return &ExpenseWithSplits{Expense: &created, Splits: stored}, nil
}

func (f *fakeStore) GetExpenseByID(_ context.Context, id string) (*Expense, error) {
	return f.expenses[id], nil
}

func (f *fakeStore) GetSplitsByExpenseID(_ context.Context, expenseID string) ([]*Split, error) {
	return f.splits[expenseID], nil
}

func (f *fakeStore) ListExpensesByGroupID(_ context.Context, groupID string, _, _ int) ([]*Expense, int, error) {
	var out []*Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) SoftDeleteExpense(_ context.Context, id string) error {
	delete(f.expenses, id)
	return nil
}

type fakeGroups struct {
	group   *group.Group
	members []string
}

func (f *fakeGroups) GetByID(_ context.Context, id string) (*group.Group, error) {
	if f.group == nil || f.group.ID != id {
		return nil, group.ErrGroupNotFound
	}
	return f.group, nil
}

func (f *fakeGroups) GetMembers(_ context.Context, groupID, requesterID string) ([]*group.GroupMember, error) {
	if f.group == nil || f.group.ID != groupID {
		return nil, group.ErrGroupNotFound
	}
	isMember := false
	for _, id := range f.members {
		if id == requesterID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, group.ErrGroupNotFound
	}

	members := make([]*group.GroupMember, len(f.members))
	for i, id := range f.members {
		members[i] = &group.GroupMember{GroupID: groupID, UserID: id}
	}
	return members, nil
}

func newTestService(store Store) *Service {
	groups := &fakeGroups{
		group:   &group.Group{ID: "g1", Currency: "USD"},
		members: []string{"alice", "bob", "carol"},
	}
	return NewService(store, groups, split.NewFactory())
}

func TestCreateExpense(t *testing.T) {
	t.Run("equal split with remainder to creator", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		result, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      1000,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "USD", result.Expense.Currency, "defaults to the group currency")
		assert.Equal(t, "alice", result.Expense.PaidByID, "defaults to the creator")
		assert.False(t, result.Expense.IsPayment)

		require.Len(t, result.Splits, 3)
		assert.Equal(t, int64(334), result.Splits[0].OwedShare)
		assert.Equal(t, int64(333), result.Splits[1].OwedShare)
		assert.Equal(t, int64(333), result.Splits[2].OwedShare)
	})

	t.Run("rejects non-member participants", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      1000,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"}, {UserID: "mallory"},
			},
		})
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("rejects duplicate participants", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      1000,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "bob"}, {UserID: "bob"},
			},
		})
		assert.ErrorIs(t, err, ErrDuplicateParticipant)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      1000,
			Currency:    "XXX",
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"}, {UserID: "bob"},
			},
		})
		assert.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
	})

	t.Run("rejects remainder with creator not participating", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		// 1000 over three participants leaves a remainder of 1, and the
		// creator is not in the list to absorb it.
		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      1000,
			SplitType:   "SHARES",
			Participants: []*SplitParticipant{
				{UserID: "bob", Weight: ptrInt64(1)},
				{UserID: "carol", Weight: ptrInt64(2)},
			},
		})
		assert.ErrorIs(t, err, ErrUnallocatedRemainder)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := newTestService(newFakeStore())

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      0,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestCreateSettlement(t *testing.T) {
	svc := newTestService(newFakeStore())

	result, err := svc.CreateSettlement(context.Background(), "bob", "g1", "alice", 1500, "")
	require.NoError(t, err)

	assert.True(t, result.Expense.IsPayment)
	assert.Equal(t, "bob", result.Expense.PaidByID)
	assert.Equal(t, int64(1500), result.Expense.Amount)
	assert.Equal(t, "USD", result.Expense.Currency, "defaults to the group currency")

	require.Len(t, result.Splits, 2)
	assert.Equal(t, "bob", result.Splits[0].UserID)
	assert.Equal(t, int64(0), result.Splits[0].OwedShare)
	assert.Equal(t, "alice", result.Splits[1].UserID)
	assert.Equal(t, int64(1500), result.Splits[1].OwedShare)
}

func TestDeleteExpense(t *testing.T) {
	t.Run("payer can delete", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		created, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      900,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"},
			},
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteExpense(context.Background(), created.Expense.ID, "alice"))

		_, err = svc.GetExpenseByID(context.Background(), created.Expense.ID)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})

	t.Run("strangers cannot delete", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		created, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID:     "g1",
			Description: "Dinner",
			Amount:      900,
			SplitType:   "EQUAL",
			Participants: []*SplitParticipant{
				{UserID: "alice"}, {UserID: "bob"},
			},
		})
		require.NoError(t, err)

		err = svc.DeleteExpense(context.Background(), created.Expense.ID, "carol")
		assert.ErrorIs(t, err, ErrNotExpenseOwner)
	})

	t.Run("settlements cannot be deleted", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		created, err := svc.CreateSettlement(context.Background(), "bob", "g1", "alice", 500, "USD")
		require.NoError(t, err)

		err = svc.DeleteExpense(context.Background(), created.Expense.ID, "bob")
		assert.ErrorIs(t, err, ErrCannotModifySettlement)
	})
}

func ptrInt64(v int64) *int64 { return &v }
