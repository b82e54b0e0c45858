package calculator

import "sort"

// settleEpsilon ignores floating point noise below a cent.
const settleEpsilon = 0.01

// Transfer is a payment one member should make to another.
type Transfer struct {
	FromID   string // Member who owes
	FromName string
	ToID     string // Member carrying an advance
	ToName   string
	Amount   float64
}

type party struct {
	id, name string
	amount   float64
}

// SuggestTransfers pairs members who owe with members holding an advance.
//
// Algorithm:
// - Debtors have Balance < 0, creditors Balance > 0
// - Both sides are sorted by amount (largest first, then by name)
// - Greedy matching: each step settles min(debt, credit)
//
// When deposits don't cover the bills, the debt left after every credit is
// used up is owed to the house fund and produces no transfer.
func SuggestTransfers(rows []MemberMetrics) []Transfer {
	var debtors, creditors []party
	for _, row := range rows {
		switch {
		case row.Balance < -settleEpsilon:
			debtors = append(debtors, party{id: row.MemberID, name: row.Name, amount: -row.Balance})
		case row.Balance > settleEpsilon:
			creditors = append(creditors, party{id: row.MemberID, name: row.Name, amount: row.Balance})
		}
	}
	sortParties(debtors)
	sortParties(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := min(debtor.amount, creditor.amount)
		if amount > settleEpsilon {
			transfers = append(transfers, Transfer{
				FromID:   debtor.id,
				FromName: debtor.name,
				ToID:     creditor.id,
				ToName:   creditor.name,
				Amount:   amount,
			})
		}

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount < settleEpsilon {
			i++
		}
		if creditor.amount < settleEpsilon {
			j++
		}
	}

	return transfers
}

func sortParties(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].amount != parties[b].amount {
			return parties[a].amount > parties[b].amount
		}
		if parties[a].name != parties[b].name {
			return parties[a].name < parties[b].name
		}
		return parties[a].id < parties[b].id
	})
}
