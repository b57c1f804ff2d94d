package ledger

import (
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// AccountBalance sums the transactions charged against the source: income
// adds, expenses subtract. It is used for accounts and benefits.
func AccountBalance(transactions []models.Transaction, source string) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		if t.Source != source {
			continue
		}

		switch t.Kind {
		case models.KindIncome:
			balance = balance.Add(t.Amount)
		case models.KindExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// CardBill is the outstanding bill of a card: expenses add, income
// (payments) subtracts.
func CardBill(transactions []models.Transaction, card string) decimal.Decimal {
	return AccountBalance(transactions, card).Neg()
}

// AvailableCredit is max(0, limit - bill) plus the manual adjustment of the
// card. A negative adjustment may push it below zero.
func AvailableCredit(card models.Card, bill decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, card.Limit.Sub(bill)).Add(card.ManualAdjustment)
}
