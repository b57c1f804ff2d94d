package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"gorm.io/gorm"
)

// Categories is the category registry of the households.
type Categories struct {
	config *ConfigStore
}

func NewCategories(config *ConfigStore) *Categories {
	return &Categories{config: config}
}

func categoryNotFound(category string) error {
	return fmt.Errorf("%w category %q matching your query", models.ErrResourceNotFound, category)
}

func subcategoryNotFound(subcategory string) error {
	return fmt.Errorf("%w subcategory %q matching your query", models.ErrResourceNotFound, subcategory)
}

func resolve(tx *gorm.DB, householdID uuid.UUID, kind models.Kind) (ledger.Taxonomy, error) {
	var overrides []models.CategoryOverride
	err := tx.Where("household_id = ? AND kind = ?", householdID, kind).Find(&overrides).Error
	if err != nil {
		return nil, err
	}

	return ledger.ResolveCategories(kind, overrides), nil
}

// Resolve returns the household's taxonomy for the kind.
func (c *Categories) Resolve(ctx context.Context, householdID uuid.UUID, kind models.Kind) (ledger.Taxonomy, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: the kind must be %s or %s", models.ErrValidation, models.KindIncome, models.KindExpense)
	}

	if householdID == uuid.Nil {
		return ledger.BaseTaxonomy(kind), nil
	}

	return resolve(c.config.db.WithContext(ctx), householdID, kind)
}

// override writes the override for the category, creating it if needed.
func override(tx *gorm.DB, householdID uuid.UUID, kind models.Kind, category string, subcategories []string, deleted bool) error {
	var o models.CategoryOverride
	err := tx.Where("household_id = ? AND kind = ? AND category = ?", householdID, kind, category).First(&o).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		return err
	}

	o.HouseholdID = householdID
	o.Kind = kind
	o.Category = category
	o.Subcategories = append(types.StringList{}, subcategories...)
	o.Deleted = deleted

	return tx.Save(&o).Error
}

// mutate resolves the taxonomy and calls fn in a transaction.
func (c *Categories) mutate(ctx context.Context, householdID uuid.UUID, kind models.Kind, fn func(tx *gorm.DB, taxonomy ledger.Taxonomy) error) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: the kind must be %s or %s", models.ErrValidation, models.KindIncome, models.KindExpense)
	}

	return c.config.write(ctx, householdID, "category", func(tx *gorm.DB, _ *renamer) error {
		taxonomy, err := resolve(tx, householdID, kind)
		if err != nil {
			return err
		}
		return fn(tx, taxonomy)
	})
}

// Add creates a category without subcategories.
func (c *Categories) Add(ctx context.Context, householdID uuid.UUID, kind models.Kind, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("%w: the category name must not be empty", models.ErrValidation)
	}

	return c.mutate(ctx, householdID, kind, func(tx *gorm.DB, taxonomy ledger.Taxonomy) error {
		if taxonomy.Has(category) {
			return models.ErrCategoryExists
		}
		return override(tx, householdID, kind, category, nil, false)
	})
}

// AddSubcategory appends the subcategory to the category. The full list is
// stored, so later changes of the built-in list no longer apply to it.
func (c *Categories) AddSubcategory(ctx context.Context, householdID uuid.UUID, kind models.Kind, category, subcategory string) error {
	category, subcategory = strings.TrimSpace(category), strings.TrimSpace(subcategory)
	if subcategory == "" {
		return fmt.Errorf("%w: the subcategory name must not be empty", models.ErrValidation)
	}

	return c.mutate(ctx, householdID, kind, func(tx *gorm.DB, taxonomy ledger.Taxonomy) error {
		if !taxonomy.Has(category) {
			return categoryNotFound(category)
		}

		if taxonomy.HasSubcategory(category, subcategory) {
			return models.ErrSubcategoryExists
		}

		return override(tx, householdID, kind, category, append(taxonomy[category], subcategory), false)
	})
}

// Remove deletes the category.
func (c *Categories) Remove(ctx context.Context, householdID uuid.UUID, kind models.Kind, category string) error {
	category = strings.TrimSpace(category)
	return c.mutate(ctx, householdID, kind, func(tx *gorm.DB, taxonomy ledger.Taxonomy) error {
		if !taxonomy.Has(category) {
			return categoryNotFound(category)
		}

		// Custom categories only exist as override and can be dropped
		if !ledger.BaseTaxonomy(kind).Has(category) {
			return tx.Where("household_id = ? AND kind = ? AND category = ?", householdID, kind, category).Delete(&models.CategoryOverride{}).Error
		}

		return override(tx, householdID, kind, category, nil, true)
	})
}

// RemoveSubcategory removes the subcategory from the category.
func (c *Categories) RemoveSubcategory(ctx context.Context, householdID uuid.UUID, kind models.Kind, category, subcategory string) error {
	category, subcategory = strings.TrimSpace(category), strings.TrimSpace(subcategory)
	return c.mutate(ctx, householdID, kind, func(tx *gorm.DB, taxonomy ledger.Taxonomy) error {
		if !taxonomy.Has(category) {
			return categoryNotFound(category)
		}

		if !taxonomy.HasSubcategory(category, subcategory) {
			return subcategoryNotFound(subcategory)
		}

		remaining := make([]string, 0, len(taxonomy[category]))
		for _, s := range taxonomy[category] {
			if s != subcategory {
				remaining = append(remaining, s)
			}
		}

		return override(tx, householdID, kind, category, remaining, false)
	})
}
