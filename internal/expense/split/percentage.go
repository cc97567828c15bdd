package split

import (
	"fmt"
	"math"
)

// percentageTolerance is how far the supplied percentages may drift from 100.
// User-entered fractional percentages (33.33 + 33.33 + 33.34) rarely hit
// 100 exactly in binary floating point.
const percentageTolerance = 0.01

// PercentageShare pairs a user with the percentage of the total they owe.
type PercentageShare struct {
	UserID string  `json:"user_id"`
	Pct    float64 `json:"pct"`
}

// ByPercentages splits total according to each user's percentage (0-100,
// fractional allowed). The percentages must sum to 100 within ±0.01. Each
// share is floored and the remainder goes to the creator.
//
//	ByPercentages(10000, []PercentageShare{{"a", 50}, {"b", 30}, {"c", 20}}, "a")
//	// map[a:5000 b:3000 c:2000]
func ByPercentages(total int64, percentages []PercentageShare, creatorID string) (map[string]int64, error) {
	if len(percentages) == 0 {
		return nil, ErrNoParticipants
	}

	var totalPct float64
	for _, p := range percentages {
		totalPct += p.Pct
	}
	if math.Abs(totalPct-100) > percentageTolerance {
		return nil, fmt.Errorf("%w, got %g", ErrPercentageSum, totalPct)
	}

	result := make(map[string]int64, len(percentages))
	var allocated int64
	for _, p := range percentages {
		share := int64(math.Floor(float64(total) * p.Pct / 100))
		result[p.UserID] = share
		allocated += share
	}

	if remainder := total - allocated; remainder > 0 {
		if _, ok := result[creatorID]; ok {
			result[creatorID] += remainder
		}
	}

	return result, nil
}

// PercentageStrategy splits the total by per-participant percentages.
type PercentageStrategy struct{}

// Type returns the split type identifier.
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Calculate divides the total by each participant's percentage; the creator
// absorbs the rounding remainder.
func (s *PercentageStrategy) Calculate(total int64, creatorID string, participants []Participant) (map[string]int64, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	percentages := make([]PercentageShare, len(participants))
	for i, p := range participants {
		if p.Percentage == nil {
			return nil, ErrMissingPercentage
		}
		percentages[i] = PercentageShare{UserID: p.UserID, Pct: *p.Percentage}
	}

	return ByPercentages(total, percentages, creatorID)
}
