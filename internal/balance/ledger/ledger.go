// Package ledger computes per-user net balances and suggested settlement
// transfers from expense history.
//
// Everything in this package is pure computation over already-fetched data:
// no I/O, no shared state, safe for concurrent callers. Amounts are integers
// in minor currency units and currencies are never mixed or converted.
package ledger

// NetBalance is one user's net position in one currency. Positive means the
// user is owed money, negative means they owe. Recomputed on every query,
// never persisted.
type NetBalance struct {
	UserID   string `json:"userId"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Debt is a suggested transfer: From pays To the given amount.
type Debt struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ExpenseSplit is one user's owed share of an expense.
type ExpenseSplit struct {
	UserID    string
	OwedShare int64
}

// ExpenseRecord is the slice of an expense the engine needs. The caller is
// responsible for excluding soft-deleted expenses and groups, and for
// guaranteeing that split owed shares sum to Amount.
type ExpenseRecord struct {
	ID        string
	GroupID   string
	Amount    int64
	Currency  string
	PaidByID  string
	IsPayment bool
	Splits    []ExpenseSplit
}

// CurrencyBalance is a per-currency net amount for a single user.
type CurrencyBalance struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Result bundles the outputs of a group balance computation.
type Result struct {
	Balances        []NetBalance `json:"balances"`
	Debts           []Debt       `json:"debts"`
	SimplifiedDebts []Debt       `json:"simplifiedDebts"`
}
