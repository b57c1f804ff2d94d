package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single monetary movement charged against a source,
// which is the name of an Account, Card or Benefit of the household.
type Transaction struct {
	DefaultModel
	HouseholdID uuid.UUID       `json:"householdId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household   Household       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description string          `json:"description" example:"Groceries"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"17.42"`
	Date        types.Date      `json:"date" gorm:"index" example:"2024-01-15"`
	Kind        Kind            `json:"kind" example:"expense"`
	Source      string          `json:"source" gorm:"index" example:"Checking"` // Name of the account, card or benefit
	Category    string          `json:"category" example:"Food"`
	Subcategory string          `json:"subcategory" example:"Groceries"`
	Person      Person          `json:"person" example:"Both"`
	Installment string          `json:"installment" example:"2/3"` // "i/N" for entries created from an installment purchase
}

// BeforeSave
//   - trims whitespace from string fields
//   - defaults the person to PersonBoth
//   - rounds the amount to cents
//   - verifies the required fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Source = strings.TrimSpace(t.Source)
	t.Category = strings.TrimSpace(t.Category)
	t.Subcategory = strings.TrimSpace(t.Subcategory)
	t.Installment = strings.TrimSpace(t.Installment)

	if t.Person == "" {
		t.Person = PersonBoth
	}

	t.Amount = t.Amount.Round(2)

	return t.Validate()
}

// Validate checks the fields that every transaction must have.
func (t Transaction) Validate() error {
	if t.HouseholdID == uuid.Nil {
		return validation("the transaction must belong to a household")
	}

	if t.Description == "" {
		return validation("the description must not be empty")
	}

	if !t.Amount.IsPositive() {
		return validation("the amount must be positive")
	}

	if t.Date.IsZero() {
		return validation("the date must be set")
	}

	if !t.Kind.Valid() {
		return validation("the kind must be %s or %s", KindIncome, KindExpense)
	}

	if t.Source == "" {
		return validation("the source must not be empty")
	}

	if !t.Person.Valid() {
		return validation("%s is not a valid person", t.Person)
	}

	return nil
}
