package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringBill is a template for a transaction that repeats every month.
type RecurringBill struct {
	DefaultModel
	HouseholdID      uuid.UUID       `json:"householdId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household        Household       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description      string          `json:"description" example:"Rent"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1200"`
	Kind             Kind            `json:"kind" example:"expense"`
	Category         string          `json:"category" example:"Housing"`
	Subcategory      string          `json:"subcategory" example:"Rent & Mortgage"`
	Source           string          `json:"source" example:"Checking"`
	Person           Person          `json:"person" example:"Both"`
	DueDay           int             `json:"dueDay" example:"5"`
	Active           bool            `json:"active" example:"true"`
	LastMaterialized types.Month     `json:"lastMaterialized" example:"2024-01"` // Last month a transaction was created for the bill
}

func (r *RecurringBill) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)
	r.Source = strings.TrimSpace(r.Source)
	r.Amount = r.Amount.Round(2)

	if r.Person == "" {
		r.Person = PersonBoth
	}

	if r.Description == "" {
		return validation("the description must not be empty")
	}

	if !r.Amount.IsPositive() {
		return validation("the amount must be positive")
	}

	if !r.Kind.Valid() {
		return validation("the kind must be %s or %s", KindIncome, KindExpense)
	}

	if !r.Person.Valid() {
		return validation("%s is not a valid person", r.Person)
	}

	if r.DueDay < 1 || r.DueDay > 31 {
		return validation("the due day must be between 1 and 31")
	}

	return nil
}

// Transaction returns the transaction the bill produces on date.
func (r RecurringBill) Transaction(date types.Date) Transaction {
	return Transaction{
		HouseholdID: r.HouseholdID,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		Kind:        r.Kind,
		Source:      r.Source,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Person:      r.Person,
	}
}
