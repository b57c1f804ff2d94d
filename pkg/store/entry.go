package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"gorm.io/gorm"
)

// Check verifies a transaction inside the write that stores it.
type Check func(tx *gorm.DB, t models.Transaction) error

// CheckEntry verifies a transaction entered by a user against the
// configuration of its household: the source must name an account, benefit
// or card and the category must be part of the taxonomy of the kind. The
// subcategory may be empty, otherwise it must belong to the category.
//
// Stored transactions are never checked again, so entries stay valid when a
// category or source is removed later.
func CheckEntry(tx *gorm.DB, t models.Transaction) error {
	source := strings.TrimSpace(t.Source)
	category := strings.TrimSpace(t.Category)
	subcategory := strings.TrimSpace(t.Subcategory)

	// Missing fields and invalid kinds are reported by models.Transaction
	if source == "" || !t.Kind.Valid() {
		return nil
	}

	exists, err := sourceExists(tx, t.HouseholdID, source)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w account, benefit or card named %q", models.ErrResourceNotFound, source)
	}

	if category == "" {
		return fmt.Errorf("%w: the category must not be empty", models.ErrValidation)
	}

	taxonomy, err := resolve(tx, t.HouseholdID, t.Kind)
	if err != nil {
		return err
	}

	if !taxonomy.Has(category) {
		return fmt.Errorf("%w: %q is not an %s category", models.ErrValidation, category, t.Kind)
	}

	if subcategory != "" && !taxonomy.HasSubcategory(category, subcategory) {
		return fmt.Errorf("%w: %q is not a subcategory of %q", models.ErrValidation, subcategory, category)
	}

	return nil
}

// sourceExists reports whether an account, benefit or card of the household
// has the name.
func sourceExists(tx *gorm.DB, householdID uuid.UUID, name string) (bool, error) {
	return sourceIn(tx, householdID, name, &models.Account{}, &models.Benefit{}, &models.Card{})
}

func sourceIn(tx *gorm.DB, householdID uuid.UUID, name string, sources ...any) (bool, error) {
	for _, model := range sources {
		var n int64
		err := tx.Model(model).Where("household_id = ? AND name = ?", householdID, name).Count(&n).Error
		if err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func runChecks(tx *gorm.DB, t models.Transaction, checks []Check) error {
	for _, check := range checks {
		if err := check(tx, t); err != nil {
			return err
		}
	}
	return nil
}
