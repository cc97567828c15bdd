package expense

import "github.com/pinxesplit/api/internal/expense/split"

// SplitParticipant describes one participant in an expense creation request.
// Which optional field is required depends on the split type: Percentage for
// PERCENTAGE, Weight for SHARES, Amount for EXACT. EQUAL needs only the ID.
type SplitParticipant struct {
	UserID     string   `json:"user_id" validate:"required"`
	Percentage *float64 `json:"percentage,omitempty"`
	Weight     *int64   `json:"weight,omitempty"`
	Amount     *int64   `json:"amount,omitempty"`
}

// ToParticipant converts the DTO to a split calculation input
func (p *SplitParticipant) ToParticipant() split.Participant {
	return split.Participant{
		UserID:     p.UserID,
		Percentage: p.Percentage,
		Weight:     p.Weight,
		Amount:     p.Amount,
	}
}

// CreateExpenseRequest represents the request to create an expense.
// Amount is in minor units of the currency. Currency defaults to the
// group's currency; PaidByID defaults to the authenticated creator.
type CreateExpenseRequest struct {
	GroupID      string              `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       int64               `json:"amount" validate:"required,gt=0"`
	Currency     string              `json:"currency,omitempty" validate:"omitempty,len=3"`
	PaidByID     string              `json:"paid_by_id,omitempty"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE SHARES EXACT"`
	Participants []*SplitParticipant `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"group_id"`
	CreatedByID string           `json:"created_by_id"`
	PaidByID    string           `json:"paid_by_id"`
	PaidByName  string           `json:"paid_by_name,omitempty"`
	Description string           `json:"description"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	SplitType   string           `json:"split_type"`
	IsPayment   bool             `json:"is_payment"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID        string `json:"id"`
	ExpenseID string `json:"expense_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	OwedShare int64  `json:"owed_share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		CreatedByID: e.CreatedByID,
		PaidByID:    e.PaidByID,
		PaidByName:  e.PaidByName,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SplitType:   e.SplitType,
		IsPayment:   e.IsPayment,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		UserName:  s.UserName,
		OwedShare: s.OwedShare,
	}
}
