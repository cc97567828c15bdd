package balance

import (
	"github.com/pinxesplit/api/internal/balance/ledger"
	"github.com/pinxesplit/api/internal/currency"
)

// SettleUpRequest represents the request to record a settle-up payment.
// Amount is in minor units; Currency defaults to the group's currency.
type SettleUpRequest struct {
	GroupID     string `json:"group_id" validate:"required"`
	RecipientID string `json:"recipient_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// GroupBalancesResponse represents the balances of one group: per-member net
// positions, pairwise debts, and the simplified transfer plan.
type GroupBalancesResponse struct {
	GroupID         string              `json:"group_id"`
	Balances        []ledger.NetBalance `json:"balances"`
	Debts           []ledger.Debt       `json:"debts"`
	SimplifiedDebts []ledger.Debt       `json:"simplifiedDebts"`
}

// OverallBalanceResponse is one per-currency net amount for a user across
// all their groups, with a human-readable rendering of the amount.
type OverallBalanceResponse struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Display  string `json:"display"`
}

// toOverallResponses formats per-currency balances for the API
func toOverallResponses(balances []ledger.CurrencyBalance) []OverallBalanceResponse {
	out := make([]OverallBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = OverallBalanceResponse{
			Currency: b.Currency,
			Amount:   b.Amount,
			Display:  currency.Format(b.Amount, b.Currency),
		}
	}
	return out
}
