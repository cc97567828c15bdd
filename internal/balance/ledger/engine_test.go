package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGroupBalances(t *testing.T) {
	t.Run("single even dinner", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", GroupID: "g1", Amount: 3000, Currency: "USD", PaidByID: "alice",
				Splits: []ExpenseSplit{
					{UserID: "alice", OwedShare: 1000},
					{UserID: "bob", OwedShare: 1000},
					{UserID: "carol", OwedShare: 1000},
				},
			},
		}

		result := ComputeGroupBalances(expenses)

		require.Equal(t, []NetBalance{
			{UserID: "alice", Currency: "USD", Amount: 2000},
			{UserID: "bob", Currency: "USD", Amount: -1000},
			{UserID: "carol", Currency: "USD", Amount: -1000},
		}, result.Balances)
		assertZeroSum(t, result.Balances)

		require.Equal(t, []Debt{
			{From: "bob", To: "alice", Amount: 1000, Currency: "USD"},
			{From: "carol", To: "alice", Amount: 1000, Currency: "USD"},
		}, result.Debts)
		require.Equal(t, result.Debts, result.SimplifiedDebts)
	})

	t.Run("payer is credited once per expense, not per split", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 400, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{
					{UserID: "a", OwedShare: 100},
					{UserID: "b", OwedShare: 100},
					{UserID: "c", OwedShare: 100},
					{UserID: "d", OwedShare: 100},
				},
			},
		}

		result := ComputeGroupBalances(expenses)
		require.Equal(t, int64(300), result.Balances[0].Amount)
		assert.Equal(t, "a", result.Balances[0].UserID)
	})

	t.Run("balances accumulate across expenses", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 1000, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 500}, {UserID: "b", OwedShare: 500}},
			},
			{
				ID: "e2", Amount: 600, Currency: "USD", PaidByID: "b",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 300}, {UserID: "b", OwedShare: 300}},
			},
		}

		result := ComputeGroupBalances(expenses)
		require.Equal(t, []NetBalance{
			{UserID: "a", Currency: "USD", Amount: 200},
			{UserID: "b", Currency: "USD", Amount: -200},
		}, result.Balances)
		assertZeroSum(t, result.Balances)
	})

	t.Run("currencies aggregate independently", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 1000, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 500}, {UserID: "b", OwedShare: 500}},
			},
			{
				ID: "e2", Amount: 400, Currency: "EUR", PaidByID: "c",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 200}, {UserID: "c", OwedShare: 200}},
			},
		}

		result := ComputeGroupBalances(expenses)
		require.Equal(t, []NetBalance{
			{UserID: "a", Currency: "USD", Amount: 500},
			{UserID: "b", Currency: "USD", Amount: -500},
			{UserID: "a", Currency: "EUR", Amount: -200},
			{UserID: "c", Currency: "EUR", Amount: 200},
		}, result.Balances)
		assertZeroSum(t, result.Balances)

		require.Len(t, result.SimplifiedDebts, 2)
		for _, d := range result.SimplifiedDebts {
			for _, other := range result.SimplifiedDebts {
				if d != other {
					assert.NotEqual(t, d.Currency, other.Currency)
				}
			}
		}
	})

	t.Run("settle-up payment cancels a debt", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 1000, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 500}, {UserID: "b", OwedShare: 500}},
			},
			{
				// b pays a back: payer owes 0, recipient owes the amount.
				ID: "p1", Amount: 500, Currency: "USD", PaidByID: "b", IsPayment: true,
				Splits: []ExpenseSplit{{UserID: "b", OwedShare: 0}, {UserID: "a", OwedShare: 500}},
			},
		}

		result := ComputeGroupBalances(expenses)
		require.Equal(t, []NetBalance{
			{UserID: "a", Currency: "USD", Amount: 0},
			{UserID: "b", Currency: "USD", Amount: 0},
		}, result.Balances)
		assert.Empty(t, result.Debts)
		assert.Empty(t, result.SimplifiedDebts)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		result := ComputeGroupBalances(nil)
		assert.Empty(t, result.Balances)
		assert.Empty(t, result.Debts)
		assert.Empty(t, result.SimplifiedDebts)
	})

	t.Run("raw debts stay pairwise while simplified reroute", func(t *testing.T) {
		// a paid for b, b paid for c. Raw keeps both edges; simplified
		// routes c straight to a.
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 200, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 100}, {UserID: "b", OwedShare: 100}},
			},
			{
				ID: "e2", Amount: 200, Currency: "USD", PaidByID: "b",
				Splits: []ExpenseSplit{{UserID: "b", OwedShare: 100}, {UserID: "c", OwedShare: 100}},
			},
		}

		result := ComputeGroupBalances(expenses)

		require.Equal(t, []Debt{
			{From: "b", To: "a", Amount: 100, Currency: "USD"},
			{From: "c", To: "b", Amount: 100, Currency: "USD"},
		}, result.Debts)

		require.Equal(t, []Debt{
			{From: "c", To: "a", Amount: 100, Currency: "USD"},
		}, result.SimplifiedDebts)
	})

	t.Run("reciprocal raw debts net to one direction", func(t *testing.T) {
		expenses := []ExpenseRecord{
			{
				ID: "e1", Amount: 300, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 150}, {UserID: "b", OwedShare: 150}},
			},
			{
				ID: "e2", Amount: 100, Currency: "USD", PaidByID: "b",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 50}, {UserID: "b", OwedShare: 50}},
			},
		}

		result := ComputeGroupBalances(expenses)
		require.Equal(t, []Debt{
			{From: "b", To: "a", Amount: 100, Currency: "USD"},
		}, result.Debts)
	})
}

func TestComputeOverallBalances(t *testing.T) {
	expenses := []ExpenseRecord{
		{
			ID: "e1", GroupID: "g1", Amount: 1000, Currency: "USD", PaidByID: "a",
			Splits: []ExpenseSplit{{UserID: "a", OwedShare: 500}, {UserID: "b", OwedShare: 500}},
		},
		{
			ID: "e2", GroupID: "g2", Amount: 900, Currency: "EUR", PaidByID: "b",
			Splits: []ExpenseSplit{{UserID: "a", OwedShare: 300}, {UserID: "b", OwedShare: 300}, {UserID: "c", OwedShare: 300}},
		},
		{
			ID: "e3", GroupID: "g2", Amount: 500, Currency: "EUR", PaidByID: "c",
			Splits: []ExpenseSplit{{UserID: "b", OwedShare: 250}, {UserID: "c", OwedShare: 250}},
		},
	}

	t.Run("nets per currency across groups", func(t *testing.T) {
		balances := ComputeOverallBalances("a", expenses)
		require.Equal(t, []CurrencyBalance{
			{Currency: "USD", Amount: 500},
			{Currency: "EUR", Amount: -300},
		}, balances)
	})

	t.Run("expenses not involving the user are skipped", func(t *testing.T) {
		balances := ComputeOverallBalances("c", expenses)
		require.Equal(t, []CurrencyBalance{
			{Currency: "EUR", Amount: -50},
		}, balances)
	})

	t.Run("zero net currencies are dropped", func(t *testing.T) {
		even := []ExpenseRecord{
			{
				ID: "e1", Amount: 200, Currency: "USD", PaidByID: "a",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 100}, {UserID: "b", OwedShare: 100}},
			},
			{
				ID: "e2", Amount: 200, Currency: "USD", PaidByID: "b",
				Splits: []ExpenseSplit{{UserID: "a", OwedShare: 100}, {UserID: "b", OwedShare: 100}},
			},
		}
		assert.Empty(t, ComputeOverallBalances("a", even))
	})

	t.Run("unknown user has no balances", func(t *testing.T) {
		assert.Empty(t, ComputeOverallBalances("nobody", expenses))
	})
}

// assertZeroSum checks the closed-system invariant: per currency, the group's
// net balances sum to zero.
func assertZeroSum(t *testing.T, balances []NetBalance) {
	t.Helper()

	sums := make(map[string]int64)
	for _, b := range balances {
		sums[b.Currency] += b.Amount
	}
	for currency, sum := range sums {
		assert.Zerof(t, sum, "currency %s does not sum to zero", currency)
	}
}
