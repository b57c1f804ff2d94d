package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// Account is a bank-like money container.
type Account struct {
	DefaultModel
	HouseholdID uuid.UUID        `json:"householdId" gorm:"uniqueIndex:account_name_household" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household   Household        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name        string           `json:"name" gorm:"uniqueIndex:account_name_household" example:"Checking"`
	Type        string           `json:"type" example:"Checking account"`
	Agency      string           `json:"agency" example:"0001"`
	Number      string           `json:"number" example:"12345"`
	CheckDigit  string           `json:"checkDigit" example:"6"`
	Audience    types.StringList `json:"audience"` // Members the account is available to. Empty means everyone
}

// BeforeSave trims whitespace from all strings and requires a name.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Type = strings.TrimSpace(a.Type)
	a.Agency = strings.TrimSpace(a.Agency)
	a.Number = strings.TrimSpace(a.Number)
	a.CheckDigit = strings.TrimSpace(a.CheckDigit)

	if a.Name == "" {
		return validation("the account name must not be empty")
	}
	return nil
}

// Benefit is a voucher-style balance container, e.g. a meal card.
type Benefit struct {
	DefaultModel
	HouseholdID uuid.UUID        `json:"householdId" gorm:"uniqueIndex:benefit_name_household" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household   Household        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name        string           `json:"name" gorm:"uniqueIndex:benefit_name_household" example:"Meal card"`
	Audience    types.StringList `json:"audience"`
}

func (b *Benefit) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if b.Name == "" {
		return validation("the benefit name must not be empty")
	}
	return nil
}
