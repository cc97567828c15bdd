// Package split divides an expense total into per-participant owed shares.
//
// All amounts are integers in minor currency units (cents, whole yen).
// Every policy guarantees that the returned shares sum exactly to the
// input total: shares are computed with floor division and the leftover
// minor units go to the expense creator.
package split

import (
	"errors"
	"fmt"
)

// Type identifies a split policy.
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeShares     Type = "SHARES"
	TypeExact      Type = "EXACT"
)

// Participant carries one user's split parameters. Which field is required
// depends on the policy: Percentage for PERCENTAGE, Weight for SHARES,
// Amount for EXACT. EQUAL needs only the user ID.
type Participant struct {
	UserID     string   `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"`
	Weight     *int64   `json:"weight,omitempty"`
	Amount     *int64   `json:"amount,omitempty"`
}

// Strategy is the interface all split policies implement.
type Strategy interface {
	// Calculate computes each participant's owed share in minor units.
	// The creator receives any remainder left over by integer division.
	Calculate(total int64, creatorID string, participants []Participant) (map[string]int64, error)

	// Type returns the policy identifier.
	Type() Type
}

// Factory creates split strategies by type.
type Factory struct{}

// NewFactory returns a strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy for the given type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeShares:
		return &SharesStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a raw string type, as received
// in API requests.
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

var (
	ErrNoParticipants    = errors.New("at least one participant is required")
	ErrNegativeAmount    = errors.New("amounts cannot be negative")
	ErrPercentageSum     = errors.New("percentages must sum to 100")
	ErrZeroTotalShares   = errors.New("total share weight cannot be zero")
	ErrAmountSum         = errors.New("exact amounts must sum to the total")
	ErrMissingPercentage = errors.New("percentage value required for all participants")
	ErrMissingWeight     = errors.New("share weight required for all participants")
	ErrMissingAmount     = errors.New("exact amount required for all participants")
	ErrNegativeWeight    = errors.New("share weights cannot be negative")
)
