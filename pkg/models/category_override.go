package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// CategoryOverride customizes one category of the base taxonomy for a
// household. It either replaces the subcategory list of the category or,
// when Deleted is set, removes the category.
type CategoryOverride struct {
	DefaultModel
	HouseholdID   uuid.UUID        `json:"householdId" gorm:"uniqueIndex:category_override_key" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Household     Household        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Kind          Kind             `json:"kind" gorm:"uniqueIndex:category_override_key" example:"expense"`
	Category      string           `json:"category" gorm:"uniqueIndex:category_override_key" example:"Pets"`
	Subcategories types.StringList `json:"subcategories"`
	Deleted       bool             `json:"deleted" example:"false"`
}

func (o *CategoryOverride) BeforeSave(_ *gorm.DB) error {
	o.Category = strings.TrimSpace(o.Category)

	if o.Category == "" {
		return validation("the category name must not be empty")
	}

	if !o.Kind.Valid() {
		return validation("the kind must be %s or %s", KindIncome, KindExpense)
	}

	if o.Deleted {
		o.Subcategories = types.StringList{}
	}
	return nil
}
