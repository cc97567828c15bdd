package ledger

// accountKey keys the aggregation map by user and currency together, so the
// type system enforces the pairing instead of a concatenated string.
type accountKey struct {
	userID   string
	currency string
}

// ComputeGroupBalances aggregates a group's expenses into net balances, raw
// pairwise debts, and a simplified transfer list.
//
// For every expense, each split's owed share is debited from that user's
// balance in the expense currency, and the payer is credited the full
// expense amount once. Settle-up payments are ordinary expenses here (payer
// owes 0, recipient owes the paid amount) so they flow through the same
// path. Within one currency the balances always sum to zero.
//
// Output order is deterministic: first appearance in the expense list.
func ComputeGroupBalances(expenses []ExpenseRecord) Result {
	totals := make(map[accountKey]int64)
	var order []accountKey

	credit := func(key accountKey, delta int64) {
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += delta
	}

	for _, e := range expenses {
		for _, s := range e.Splits {
			credit(accountKey{s.UserID, e.Currency}, -s.OwedShare)
		}
		// The payer is credited once per expense, not once per split row.
		credit(accountKey{e.PaidByID, e.Currency}, e.Amount)
	}

	balances := make([]NetBalance, 0, len(order))
	for _, key := range order {
		balances = append(balances, NetBalance{
			UserID:   key.userID,
			Currency: key.currency,
			Amount:   totals[key],
		})
	}

	return Result{
		Balances:        balances,
		Debts:           pairwiseDebts(expenses),
		SimplifiedDebts: SimplifyMultiCurrency(balances),
	}
}

// pairKey identifies a directed debtor -> creditor edge in one currency.
type pairKey struct {
	from     string
	to       string
	currency string
}

// pairwiseDebts builds the unsimplified debt list: for every expense, each
// non-payer participant owes their share to the payer. Debts between the
// same pair accumulate, and opposite directions between a pair are netted
// into one edge, but debts are never rerouted through third parties the way
// simplification does.
func pairwiseDebts(expenses []ExpenseRecord) []Debt {
	owed := make(map[pairKey]int64)
	var order []pairKey

	for _, e := range expenses {
		for _, s := range e.Splits {
			if s.UserID == e.PaidByID || s.OwedShare == 0 {
				continue
			}
			key := pairKey{from: s.UserID, to: e.PaidByID, currency: e.Currency}
			if _, seen := owed[key]; !seen {
				order = append(order, key)
			}
			owed[key] += s.OwedShare
		}
	}

	var debts []Debt
	for _, key := range order {
		amount := owed[key]
		if amount == 0 {
			continue
		}
		reverse := pairKey{from: key.to, to: key.from, currency: key.currency}
		back := owed[reverse]
		if back >= amount {
			owed[reverse] = back - amount
			owed[key] = 0
			continue
		}
		owed[key] = 0
		owed[reverse] = 0
		debts = append(debts, Debt{
			From:     key.from,
			To:       key.to,
			Amount:   amount - back,
			Currency: key.currency,
		})
	}

	return debts
}

// ComputeOverallBalances nets one user's position per currency across all
// expenses they are involved in, typically spanning every group they belong
// to. Zero balances are dropped. Currencies are reported independently.
func ComputeOverallBalances(userID string, expenses []ExpenseRecord) []CurrencyBalance {
	totals := make(map[string]int64)
	var order []string

	for _, e := range expenses {
		var net int64
		involved := false
		if e.PaidByID == userID {
			net += e.Amount
			involved = true
		}
		for _, s := range e.Splits {
			if s.UserID == userID {
				net -= s.OwedShare
				involved = true
			}
		}
		if !involved {
			continue
		}
		if _, seen := totals[e.Currency]; !seen {
			order = append(order, e.Currency)
		}
		totals[e.Currency] += net
	}

	balances := make([]CurrencyBalance, 0, len(order))
	for _, currency := range order {
		if totals[currency] == 0 {
			continue
		}
		balances = append(balances, CurrencyBalance{Currency: currency, Amount: totals[currency]})
	}

	return balances
}
