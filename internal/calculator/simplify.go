package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

type party struct {
	memberID string
	amount   decimal.Decimal
}

// SimplifyDebts turns a balance map into a sequence of payments that settles
// every member. Creditors and debtors are matched greedily, largest amounts
// first, which keeps the payment count low (at most one less than the number
// of members) without attempting a provably minimal solution.
//
// Members within tolerance of zero on either side are never matched. Applying
// every returned payment as a settlement and recomputing balances yields
// all-zero balances within tolerance.
func SimplifyDebts(balances Balances) []domain.SimplifiedDebt {
	var creditors, debtors []party

	for memberID, balance := range balances {
		switch {
		case balance.GreaterThan(tolerance):
			creditors = append(creditors, party{memberID, roundToCents(balance)})
		case balance.LessThan(tolerance.Neg()):
			debtors = append(debtors, party{memberID, roundToCents(balance.Abs())})
		}
	}

	// Largest obligations first; ties broken by member id so the output is
	// deterministic regardless of map iteration order.
	sortPartiesDesc(creditors)
	sortPartiesDesc(debtors)

	var debts []domain.SimplifiedDebt

	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		settle := decimal.Min(creditor.amount, debtor.amount)

		debts = append(debts, domain.SimplifiedDebt{
			FromMemberID: debtor.memberID,
			ToMemberID:   creditor.memberID,
			Amount:       settle,
		})

		creditor.amount = creditor.amount.Sub(settle)
		debtor.amount = debtor.amount.Sub(settle)

		if creditor.amount.LessThan(tolerance) {
			ci++
		}
		if debtor.amount.LessThan(tolerance) {
			di++
		}
	}

	return debts
}

func sortPartiesDesc(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount.Equal(parties[j].amount) {
			return parties[i].memberID < parties[j].memberID
		}
		return parties[i].amount.GreaterThan(parties[j].amount)
	})
}
