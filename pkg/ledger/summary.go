package ledger

import (
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// SourceBalance is the balance of an account or benefit.
type SourceBalance struct {
	ID      string          `json:"id" example:"2ad5a5b2-5fe0-4d42-8e3a-5b9cd1c14b5e"`
	Name    string          `json:"name" example:"Checking"`
	Balance decimal.Decimal `json:"balance" example:"1520.42"`
}

// CardStatus is the derived state of a card.
type CardStatus struct {
	ID           string          `json:"id" example:"2ad5a5b2-5fe0-4d42-8e3a-5b9cd1c14b5e"`
	Name         string          `json:"name" example:"Visa"`
	Limit        decimal.Decimal `json:"limit" example:"1000"`
	Bill         decimal.Decimal `json:"bill" example:"150"`
	Available    decimal.Decimal `json:"available" example:"850"`
	NextDueDate  *types.Date     `json:"nextDueDate" example:"2024-02-10"` // Unset when the due day is not configured
	DaysUntilDue int             `json:"daysUntilDue" example:"12"`
	BestPurchase *PurchaseWindow `json:"bestPurchase"` // Unset when closing or due day are not configured
}

// Overview aggregates all balances of a household.
type Overview struct {
	Accounts      []SourceBalance `json:"accounts"`
	Benefits      []SourceBalance `json:"benefits"`
	Cards         []CardStatus    `json:"cards"`
	TotalAccounts decimal.Decimal `json:"totalAccounts" example:"2040.12"`
	TotalBenefits decimal.Decimal `json:"totalBenefits" example:"350"`
	TotalBills    decimal.Decimal `json:"totalBills" example:"150"`
	TotalLimits   decimal.Decimal `json:"totalLimits" example:"1000"`
}

// Status computes the bill, available credit and billing cycle of the card.
func Status(today types.Date, transactions []models.Transaction, card models.Card) CardStatus {
	bill := CardBill(transactions, card.Name)

	status := CardStatus{
		ID:        card.ID.String(),
		Name:      card.Name,
		Limit:     card.Limit,
		Bill:      bill,
		Available: AvailableCredit(card, bill),
	}

	if due, ok := NextDueDate(today, card.DueDay); ok {
		status.NextDueDate = &due
		status.DaysUntilDue = DaysUntilDue(today, card.DueDay)
	}

	if window, ok := BestPurchaseDay(card.ClosingDay, card.DueDay); ok {
		status.BestPurchase = &window
	}

	return status
}

// Summarize computes the overview for the given transactions and config entities.
func Summarize(today types.Date, transactions []models.Transaction, accounts []models.Account, benefits []models.Benefit, cards []models.Card) Overview {
	o := Overview{
		Accounts:      make([]SourceBalance, 0, len(accounts)),
		Benefits:      make([]SourceBalance, 0, len(benefits)),
		Cards:         make([]CardStatus, 0, len(cards)),
		TotalAccounts: decimal.Zero,
		TotalBenefits: decimal.Zero,
		TotalBills:    decimal.Zero,
		TotalLimits:   decimal.Zero,
	}

	for _, a := range accounts {
		balance := AccountBalance(transactions, a.Name)
		o.Accounts = append(o.Accounts, SourceBalance{ID: a.ID.String(), Name: a.Name, Balance: balance})
		o.TotalAccounts = o.TotalAccounts.Add(balance)
	}

	for _, b := range benefits {
		balance := AccountBalance(transactions, b.Name)
		o.Benefits = append(o.Benefits, SourceBalance{ID: b.ID.String(), Name: b.Name, Balance: balance})
		o.TotalBenefits = o.TotalBenefits.Add(balance)
	}

	for _, c := range cards {
		status := Status(today, transactions, c)
		o.Cards = append(o.Cards, status)
		o.TotalBills = o.TotalBills.Add(status.Bill)
		o.TotalLimits = o.TotalLimits.Add(c.Limit)
	}

	return o
}
