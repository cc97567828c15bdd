package split

import "fmt"

// ExactAmount pairs a user with the exact minor-unit amount they owe.
type ExactAmount struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

// ByAmounts assigns the caller-supplied amounts directly. The amounts must
// sum to total exactly; there is no flooring and no remainder handling.
func ByAmounts(total int64, amounts []ExactAmount) (map[string]int64, error) {
	if len(amounts) == 0 {
		return nil, ErrNoParticipants
	}

	var sum int64
	for _, a := range amounts {
		if a.Amount < 0 {
			return nil, ErrNegativeAmount
		}
		sum += a.Amount
	}
	if sum != total {
		return nil, fmt.Errorf("%w: sum of amounts (%d) does not equal total (%d)", ErrAmountSum, sum, total)
	}

	result := make(map[string]int64, len(amounts))
	for _, a := range amounts {
		result[a.UserID] = a.Amount
	}

	return result, nil
}

// ExactStrategy assigns caller-specified amounts to each participant.
type ExactStrategy struct{}

// Type returns the split type identifier.
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Calculate validates that the supplied amounts sum to the total and returns
// them as-is. The creator ID is unused: exact splits have no remainder.
func (s *ExactStrategy) Calculate(total int64, creatorID string, participants []Participant) (map[string]int64, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}

	amounts := make([]ExactAmount, len(participants))
	for i, p := range participants {
		if p.Amount == nil {
			return nil, ErrMissingAmount
		}
		amounts[i] = ExactAmount{UserID: p.UserID, Amount: *p.Amount}
	}

	return ByAmounts(total, amounts)
}
