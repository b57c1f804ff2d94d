package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"gorm.io/gorm"
)

// find loads the row of T with the id that belongs to the household.
func find[T any](tx *gorm.DB, householdID, id uuid.UUID) (T, error) {
	var row T
	err := tx.Where("id = ? AND household_id = ?", id, householdID).First(&row).Error
	return row, err
}

// remove deletes the row of T with the id that belongs to the household.
func remove[T any](tx *gorm.DB, householdID, id uuid.UUID) error {
	row, err := find[T](tx, householdID, id)
	if err != nil {
		return err
	}

	return tx.Delete(&row).Error
}

func (s *ConfigStore) AddAccount(ctx context.Context, householdID uuid.UUID, a models.Account) (models.Account, error) {
	a.ID = uuid.Nil
	a.HouseholdID = householdID

	err := s.write(ctx, householdID, "account", func(tx *gorm.DB, _ *renamer) error {
		return tx.Create(&a).Error
	})
	return a, err
}

// UpdateAccount changes the account. A new name is carried over to the
// transactions charged against it.
func (s *ConfigStore) UpdateAccount(ctx context.Context, householdID, id uuid.UUID, changes AccountChanges) (models.Account, error) {
	var a models.Account
	err := s.write(ctx, householdID, "account", func(tx *gorm.DB, r *renamer) (err error) {
		a, err = find[models.Account](tx, householdID, id)
		if err != nil {
			return err
		}

		name := a.Name
		changes.apply(&a)
		if err := tx.Save(&a).Error; err != nil {
			return err
		}

		return r.rename(name, a.Name)
	})
	return a, err
}

func (s *ConfigStore) RemoveAccount(ctx context.Context, householdID, id uuid.UUID) error {
	return s.write(ctx, householdID, "account", func(tx *gorm.DB, _ *renamer) error {
		return remove[models.Account](tx, householdID, id)
	})
}

func (s *ConfigStore) AddBenefit(ctx context.Context, householdID uuid.UUID, b models.Benefit) (models.Benefit, error) {
	b.ID = uuid.Nil
	b.HouseholdID = householdID

	err := s.write(ctx, householdID, "benefit", func(tx *gorm.DB, _ *renamer) error {
		return tx.Create(&b).Error
	})
	return b, err
}

func (s *ConfigStore) UpdateBenefit(ctx context.Context, householdID, id uuid.UUID, changes BenefitChanges) (models.Benefit, error) {
	var b models.Benefit
	err := s.write(ctx, householdID, "benefit", func(tx *gorm.DB, r *renamer) (err error) {
		b, err = find[models.Benefit](tx, householdID, id)
		if err != nil {
			return err
		}

		name := b.Name
		changes.apply(&b)
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		return r.rename(name, b.Name)
	})
	return b, err
}

func (s *ConfigStore) RemoveBenefit(ctx context.Context, householdID, id uuid.UUID) error {
	return s.write(ctx, householdID, "benefit", func(tx *gorm.DB, _ *renamer) error {
		return remove[models.Benefit](tx, householdID, id)
	})
}

func (s *ConfigStore) AddCard(ctx context.Context, householdID uuid.UUID, c models.Card) (models.Card, error) {
	c.ID = uuid.Nil
	c.HouseholdID = householdID

	err := s.write(ctx, householdID, "card", func(tx *gorm.DB, _ *renamer) error {
		return tx.Create(&c).Error
	})
	return c, err
}

func (s *ConfigStore) UpdateCard(ctx context.Context, householdID, id uuid.UUID, changes CardChanges) (models.Card, error) {
	var c models.Card
	err := s.write(ctx, householdID, "card", func(tx *gorm.DB, r *renamer) (err error) {
		c, err = find[models.Card](tx, householdID, id)
		if err != nil {
			return err
		}

		name := c.Name
		changes.apply(&c)
		if err := tx.Save(&c).Error; err != nil {
			return err
		}

		return r.rename(name, c.Name)
	})
	return c, err
}

func (s *ConfigStore) RemoveCard(ctx context.Context, householdID, id uuid.UUID) error {
	return s.write(ctx, householdID, "card", func(tx *gorm.DB, _ *renamer) error {
		return remove[models.Card](tx, householdID, id)
	})
}

// Card returns a single card of the household.
func (s *ConfigStore) Card(ctx context.Context, householdID, id uuid.UUID) (models.Card, error) {
	return find[models.Card](s.db.WithContext(ctx), householdID, id)
}

// AddRecurringBill creates the bill. The checks run on the transaction the
// bill produces.
func (s *ConfigStore) AddRecurringBill(ctx context.Context, householdID uuid.UUID, b models.RecurringBill, checks ...Check) (models.RecurringBill, error) {
	b.ID = uuid.Nil
	b.HouseholdID = householdID

	err := s.write(ctx, householdID, "recurring_bill", func(tx *gorm.DB, _ *renamer) error {
		if err := runChecks(tx, b.Transaction(types.Date{}), checks); err != nil {
			return err
		}
		return tx.Create(&b).Error
	})
	return b, err
}

func (s *ConfigStore) UpdateRecurringBill(ctx context.Context, householdID, id uuid.UUID, changes RecurringBillChanges, checks ...Check) (models.RecurringBill, error) {
	var b models.RecurringBill
	err := s.write(ctx, householdID, "recurring_bill", func(tx *gorm.DB, _ *renamer) (err error) {
		b, err = find[models.RecurringBill](tx, householdID, id)
		if err != nil {
			return err
		}

		changes.apply(&b)
		if changes.classifies() {
			if err := runChecks(tx, b.Transaction(types.Date{}), checks); err != nil {
				return err
			}
		}

		return tx.Save(&b).Error
	})
	return b, err
}

func (s *ConfigStore) RemoveRecurringBill(ctx context.Context, householdID, id uuid.UUID) error {
	return s.write(ctx, householdID, "recurring_bill", func(tx *gorm.DB, _ *renamer) error {
		return remove[models.RecurringBill](tx, householdID, id)
	})
}
