package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card is a credit card.
type Card struct {
	DefaultModel
	HouseholdID      uuid.UUID        `json:"householdId" gorm:"uniqueIndex:card_name_household" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household        Household        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name             string           `json:"name" gorm:"uniqueIndex:card_name_household" example:"Visa"`
	Limit            decimal.Decimal  `json:"limit" gorm:"type:DECIMAL(20,8)" example:"1000"`
	ClosingDay       int              `json:"closingDay" example:"3"`                                 // Day of month the statement closes. 0 if unknown
	DueDay           int              `json:"dueDay" example:"10"`                                    // Day of month the bill is due. 0 if unknown
	ManualAdjustment decimal.Decimal  `json:"manualAdjustment" gorm:"type:DECIMAL(20,8)" example:"0"` // Signed correction added to the available credit
	Audience         types.StringList `json:"audience"`
}

func (c *Card) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return validation("the card name must not be empty")
	}

	if c.Limit.IsNegative() {
		return validation("the card limit must not be negative")
	}

	if c.ClosingDay < 0 || c.ClosingDay > 31 {
		return validation("the closing day must be between 1 and 31")
	}

	if c.DueDay < 0 || c.DueDay > 31 {
		return validation("the due day must be between 1 and 31")
	}

	return nil
}
