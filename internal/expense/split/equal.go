package split

// Evenly splits total into equal shares for each user ID. The base share is
// total / n rounded toward zero; the remainder goes to the creator so the
// shares always sum exactly to total.
//
//	Evenly(1000, []string{"a", "b", "c"}, "a")
//	// map[a:334 b:333 c:333]
func Evenly(total int64, userIDs []string, creatorID string) (map[string]int64, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoParticipants
	}

	base := total / int64(len(userIDs))
	remainder := total - base*int64(len(userIDs))

	result := make(map[string]int64, len(userIDs))
	for _, id := range userIDs {
		result[id] = base
	}

	if remainder > 0 {
		if _, ok := result[creatorID]; ok {
			result[creatorID] += remainder
		}
	}

	return result, nil
}

// EqualStrategy splits the total evenly among all participants.
type EqualStrategy struct{}

// Type returns the split type identifier.
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Calculate divides the total equally; the creator absorbs the remainder.
func (s *EqualStrategy) Calculate(total int64, creatorID string, participants []Participant) (map[string]int64, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}

	userIDs := make([]string, len(participants))
	for i, p := range participants {
		userIDs[i] = p.UserID
	}

	return Evenly(total, userIDs, creatorID)
}
