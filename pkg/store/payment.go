package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardPayment is the payment of a card bill from an account or benefit.
type CardPayment struct {
	From   string           `json:"from" example:"Checking"`   // Name of the paying account or benefit
	Amount *decimal.Decimal `json:"amount" example:"150"`      // Defaults to the current bill
	Date   types.Date       `json:"date" example:"2024-02-10"` // Defaults to today
	Person models.Person    `json:"person" example:"Both"`
}

// PayCardBill records the payment as two transactions appended together:
// an expense on the paying source and an income on the card. The card, the
// paying source and the bill are read in the same write.
func (l *Ledger) PayCardBill(ctx context.Context, householdID, cardID uuid.UUID, payment CardPayment) ([]models.Transaction, error) {
	if householdID == uuid.Nil {
		return nil, ErrNoHousehold
	}

	var created []models.Transaction
	err := l.Within(ctx, householdID, func(tx *gorm.DB) error {
		card, err := find[models.Card](tx, householdID, cardID)
		if err != nil {
			return err
		}

		exists, err := sourceIn(tx, householdID, payment.From, &models.Account{}, &models.Benefit{})
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w account or benefit named %q to pay from", models.ErrResourceNotFound, payment.From)
		}

		amount := decimal.Zero
		if payment.Amount != nil {
			amount = *payment.Amount
		} else {
			var charges []models.Transaction
			err := tx.Where("household_id = ? AND source = ?", householdID, card.Name).Find(&charges).Error
			if err != nil {
				return err
			}
			amount = ledger.CardBill(charges, card.Name)
		}

		if !amount.IsPositive() {
			return fmt.Errorf("%w: the payment amount must be positive, the bill of %s is %s", models.ErrValidation, card.Name, amount)
		}

		created, err = create(tx, householdID, cardPayment(card, payment, amount), nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	writesTotal.WithLabelValues("append").Add(float64(len(created)))
	return created, nil
}

// cardPayment returns the expense on the paying source and the income on
// the card.
func cardPayment(card models.Card, payment CardPayment, amount decimal.Decimal) []models.Transaction {
	date := payment.Date
	if date.IsZero() {
		date = types.DateOf(time.Now())
	}

	description := fmt.Sprintf("Payment of %s bill", card.Name)
	return []models.Transaction{
		{
			Description: description,
			Amount:      amount,
			Date:        date,
			Kind:        models.KindExpense,
			Source:      payment.From,
			Category:    ledger.CategoryDebts,
			Subcategory: ledger.SubcategoryCardPayment,
			Person:      payment.Person,
		},
		{
			Description: description,
			Amount:      amount,
			Date:        date,
			Kind:        models.KindIncome,
			Source:      card.Name,
			Category:    ledger.CategoryDebts,
			Subcategory: ledger.SubcategoryCardPayment,
			Person:      payment.Person,
		},
	}
}
