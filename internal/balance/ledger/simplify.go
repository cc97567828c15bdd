package ledger

import "sort"

// SimplifyDebts reduces one currency's balances to a minimal transfer list
// with the greedy net-balance algorithm:
//
//  1. Partition non-zero balances into creditors (amount > 0) and debtors
//     (amount < 0, tracked as positive magnitudes).
//  2. Stable-sort both lists descending, so equal amounts keep their input
//     order and repeated runs produce identical output.
//  3. Match the largest creditor against the largest debtor, transfer the
//     smaller of the two remainders, and advance past whichever side hits
//     zero.
//
// For N users with non-zero balance this emits at most N-1 transfers and
// never changes any user's net total, only the routing.
func SimplifyDebts(balances []NetBalance, currency string) []Debt {
	type party struct {
		userID string
		amount int64
	}

	var creditors, debtors []party
	for _, b := range balances {
		if b.Currency != currency || b.Amount == 0 {
			continue
		}
		if b.Amount > 0 {
			creditors = append(creditors, party{b.UserID, b.Amount})
		} else {
			debtors = append(debtors, party{b.UserID, -b.Amount})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var debts []Debt
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		transfer := min(creditor.amount, debtor.amount)
		debts = append(debts, Debt{
			From:     debtor.userID,
			To:       creditor.userID,
			Amount:   transfer,
			Currency: currency,
		})

		creditor.amount -= transfer
		debtor.amount -= transfer
		if creditor.amount == 0 {
			ci++
		}
		if debtor.amount == 0 {
			di++
		}
	}

	return debts
}

// SimplifyMultiCurrency runs SimplifyDebts once per currency present in the
// balance set and concatenates the results. Currencies never interact.
func SimplifyMultiCurrency(balances []NetBalance) []Debt {
	seen := make(map[string]bool)
	var currencies []string
	for _, b := range balances {
		if !seen[b.Currency] {
			seen[b.Currency] = true
			currencies = append(currencies, b.Currency)
		}
	}

	var debts []Debt
	for _, currency := range currencies {
		debts = append(debts, SimplifyDebts(balances, currency)...)
	}
	return debts
}
