package expense

import "time"

// Expense represents a shared expense in a group. Amount is stored in the
// currency's minor units (cents for USD, whole yen for JPY), so split and
// balance arithmetic stays integer-exact.
//
// Settle-up payments are expenses with IsPayment set: the payer's owed share
// is zero and the recipient's owed share equals the full amount.
type Expense struct {
	ID          string     `json:"id"`
	GroupID     string     `json:"group_id"`
	CreatedByID string     `json:"created_by_id"`
	PaidByID    string     `json:"paid_by_id"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	SplitType   string     `json:"split_type"`
	IsPayment   bool       `json:"is_payment"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"-"`

	// Populated from JOIN
	PaidByName string `json:"paid_by_name,omitempty"`
}

// Split represents one participant's owed share of an expense, in minor
// units. The shares of an expense always sum to its amount exactly.
type Split struct {
	ID        string `json:"id"`
	ExpenseID string `json:"expense_id"`
	UserID    string `json:"user_id"`
	OwedShare int64  `json:"owed_share"`

	// Populated from JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits bundles an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
