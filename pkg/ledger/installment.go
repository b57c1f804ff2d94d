package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// ErrInstallmentCount is returned for installment purchases with fewer than two installments.
var ErrInstallmentCount = fmt.Errorf("%w: an installment purchase needs at least 2 installments", models.ErrValidation)

// ExpandInstallments splits the purchase into n monthly transactions.
//
// Each installment is the amount divided by n, truncated to cents. The
// remainder goes to the first installment so that the sum is exact.
// Amounts under one cent per installment are rejected. Installment i is dated i months after the template's date and labeled
// "i/n", its description gets the suffix " (i/n)".
func ExpandInstallments(template models.Transaction, n int) ([]models.Transaction, error) {
	if n < 2 {
		return nil, ErrInstallmentCount
	}

	total := template.Amount.Round(2)
	count := decimal.NewFromInt(int64(n))
	part := total.DivRound(count, 8).Truncate(2)
	if total.IsPositive() && part.IsZero() {
		return nil, fmt.Errorf("%w: the amount is too small for %d installments", models.ErrValidation, n)
	}
	remainder := total.Sub(part.Mul(count))

	transactions := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("%d/%d", i+1, n)

		t := template
		t.ID = uuid.Nil
		t.Amount = part
		if i == 0 {
			t.Amount = part.Add(remainder)
		}
		t.Date = AddMonths(template.Date, i)
		t.Installment = label
		t.Description = fmt.Sprintf("%s (%s)", template.Description, label)

		transactions = append(transactions, t)
	}

	return transactions, nil
}
