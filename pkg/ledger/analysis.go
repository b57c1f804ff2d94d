package ledger

import (
	"strings"

	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// SubcategoryOutgoingAdjustment marks expenses that correct a balance.
const SubcategoryOutgoingAdjustment = "Outgoing Adjustment"

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string          `json:"category" example:"Food"`
	Amount   decimal.Decimal `json:"amount" example:"812.35"`
}

// Analysis summarizes a set of transactions.
type Analysis struct {
	Income           decimal.Decimal                   `json:"income" example:"5000"`
	Expenses         decimal.Decimal                   `json:"expenses" example:"3120.50"`
	Balance          decimal.Decimal                   `json:"balance" example:"1879.50"`
	DailyExpenses    decimal.Decimal                   `json:"dailyExpenses" example:"104.02"` // Average expenses per day between the first and last transaction
	Transactions     int                               `json:"transactions" example:"42"`
	Categories       []CategoryTotal                   `json:"categories"`  // Spending per category, largest first
	TopCategory      *CategoryTotal                    `json:"topCategory"` // Unset when nothing was spent
	ExpensesByPerson map[models.Person]decimal.Decimal `json:"expensesByPerson"`
}

// spending reports whether the expense counts as spending in a category.
// Card bill payments would count the card purchases twice and adjustments
// only correct balances.
func spending(t models.Transaction) bool {
	return t.Kind == models.KindExpense && t.Subcategory != SubcategoryCardPayment && t.Subcategory != SubcategoryOutgoingAdjustment
}

// Analyze computes totals, the daily average of expenses and the spending per
// category and person of the transactions.
func Analyze(transactions []models.Transaction) Analysis {
	a := Analysis{
		Income:           decimal.Zero,
		Expenses:         decimal.Zero,
		Balance:          decimal.Zero,
		DailyExpenses:    decimal.Zero,
		Transactions:     len(transactions),
		Categories:       []CategoryTotal{},
		ExpensesByPerson: map[models.Person]decimal.Decimal{},
	}

	if len(transactions) == 0 {
		return a
	}

	categories := map[string]decimal.Decimal{}
	first, last := transactions[0].Date, transactions[0].Date

	for _, t := range transactions {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}

		switch t.Kind {
		case models.KindIncome:
			a.Income = a.Income.Add(t.Amount)
		case models.KindExpense:
			a.Expenses = a.Expenses.Add(t.Amount)
			a.ExpensesByPerson[t.Person] = a.ExpensesByPerson[t.Person].Add(t.Amount)
		}

		if spending(t) {
			categories[t.Category] = categories[t.Category].Add(t.Amount)
		}
	}

	a.Balance = a.Income.Sub(a.Expenses)
	a.DailyExpenses = a.Expenses.DivRound(decimal.NewFromInt(int64(days(first, last))), 2)

	for category, amount := range categories {
		a.Categories = append(a.Categories, CategoryTotal{Category: category, Amount: amount})
	}
	slices.SortFunc(a.Categories, func(x, y CategoryTotal) int {
		if c := y.Amount.Cmp(x.Amount); c != 0 {
			return c
		}
		return strings.Compare(x.Category, y.Category)
	})

	if len(a.Categories) > 0 {
		top := a.Categories[0]
		a.TopCategory = &top
	}

	return a
}

// days is the number of calendar days from first to last, both included.
func days(first, last types.Date) int {
	n := int(last.Time().Sub(first.Time()).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}
