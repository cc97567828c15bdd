package split

// WeightedShare pairs a user with their share weight (ratio numerator).
type WeightedShare struct {
	UserID string `json:"user_id"`
	Weight int64  `json:"weight"`
}

// ByShares splits total proportionally to integer weights. Each share is
// total * weight / totalWeight rounded toward zero; the remainder goes to
// the creator. An empty list or all-zero weights is an error.
//
//	ByShares(10000, []WeightedShare{{"a", 2}, {"b", 1}}, "a")
//	// map[a:6667 b:3333]
func ByShares(total int64, shares []WeightedShare, creatorID string) (map[string]int64, error) {
	var totalWeight int64
	for _, s := range shares {
		if s.Weight < 0 {
			return nil, ErrNegativeWeight
		}
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return nil, ErrZeroTotalShares
	}

	result := make(map[string]int64, len(shares))
	var allocated int64
	for _, s := range shares {
		share := total * s.Weight / totalWeight
		result[s.UserID] = share
		allocated += share
	}

	if remainder := total - allocated; remainder > 0 {
		if _, ok := result[creatorID]; ok {
			result[creatorID] += remainder
		}
	}

	return result, nil
}

// SharesStrategy splits the total proportionally to integer weights.
type SharesStrategy struct{}

// Type returns the split type identifier.
func (s *SharesStrategy) Type() Type {
	return TypeShares
}

// Calculate divides the total by weight ratio; the creator absorbs the
// rounding remainder.
func (s *SharesStrategy) Calculate(total int64, creatorID string, participants []Participant) (map[string]int64, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}

	shares := make([]WeightedShare, len(participants))
	for i, p := range participants {
		if p.Weight == nil {
			return nil, ErrMissingWeight
		}
		shares[i] = WeightedShare{UserID: p.UserID, Weight: *p.Weight}
	}

	return ByShares(total, shares, creatorID)
}
