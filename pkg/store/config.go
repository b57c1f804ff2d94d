package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"gorm.io/gorm"
)

// Config is the configuration aggregate of a household.
type Config struct {
	Accounts          []models.Account          `json:"accounts"`
	Benefits          []models.Benefit          `json:"benefits"`
	Cards             []models.Card             `json:"cards"`
	RecurringBills    []models.RecurringBill    `json:"recurringBills"`
	CategoryOverrides []models.CategoryOverride `json:"categoryOverrides"`
}

// ConfigPatch replaces the lists that are set. Lists are replaced as a
// whole: rows missing from a list are deleted. Rows keep their id if it is
// set and belongs to the household.
type ConfigPatch struct {
	Accounts          *[]models.Account          `json:"accounts"`
	Benefits          *[]models.Benefit          `json:"benefits"`
	Cards             *[]models.Card             `json:"cards"`
	RecurringBills    *[]models.RecurringBill    `json:"recurringBills"`
	CategoryOverrides *[]models.CategoryOverride `json:"categoryOverrides"`
}

// ConfigStore persists the configuration aggregate.
type ConfigStore struct {
	db     *gorm.DB
	ledger *Ledger
}

func NewConfigStore(l *Ledger) *ConfigStore {
	return &ConfigStore{db: l.db, ledger: l}
}

func emptyConfig() Config {
	return Config{
		Accounts:          []models.Account{},
		Benefits:          []models.Benefit{},
		Cards:             []models.Card{},
		RecurringBills:    []models.RecurringBill{},
		CategoryOverrides: []models.CategoryOverride{},
	}
}

// Get returns the configuration of the household.
func (s *ConfigStore) Get(ctx context.Context, householdID uuid.UUID) (Config, error) {
	if householdID == uuid.Nil {
		return emptyConfig(), nil
	}

	return loadConfig(s.db.WithContext(ctx), householdID)
}

func loadConfig(tx *gorm.DB, householdID uuid.UUID) (Config, error) {
	c := emptyConfig()

	queries := []any{&c.Accounts, &c.Benefits, &c.Cards, &c.RecurringBills, &c.CategoryOverrides}
	for _, q := range queries {
		if err := tx.Where("household_id = ?", householdID).Order("created_at, id").Find(q).Error; err != nil {
			return Config{}, err
		}
	}

	return c, nil
}

// write runs fn in a transaction. It verifies that source names are unique
// across accounts, benefits and cards and notifies ledger listeners if fn
// rewrote transactions.
func (s *ConfigStore) write(ctx context.Context, householdID uuid.UUID, operation string, fn func(tx *gorm.DB, r *renamer) error) error {
	if householdID == uuid.Nil {
		return ErrNoHousehold
	}

	var renamed bool
	err := Atomic(ctx, s.db, func(tx *gorm.DB) error {
		r := &renamer{tx: tx, householdID: householdID}
		if err := fn(tx, r); err != nil {
			return err
		}

		if err := r.apply(); err != nil {
			return err
		}

		renamed = r.count > 0
		return checkSourceNames(tx, householdID)
	})
	if err != nil {
		return err
	}

	writesTotal.WithLabelValues(operation).Inc()
	if renamed {
		s.ledger.notify(ctx, householdID)
	}
	return nil
}

// Update replaces the lists set in the patch. Renamed sources are carried
// over to the household's transactions and recurring bills.
func (s *ConfigStore) Update(ctx context.Context, householdID uuid.UUID, patch ConfigPatch) (Config, error) {
	var c Config
	err := s.write(ctx, householdID, "config", func(tx *gorm.DB, r *renamer) error {
		old, err := loadConfig(tx, householdID)
		if err != nil {
			return err
		}

		if patch.Accounts != nil {
			names := map[uuid.UUID]string{}
			for _, a := range old.Accounts {
				names[a.ID] = a.Name
			}

			rows := *patch.Accounts
			for i := range rows {
				rows[i].HouseholdID = householdID
				if _, ok := names[rows[i].ID]; !ok {
					rows[i].ID = uuid.Nil
				}
			}

			if err := replaceAll(tx, householdID, rows); err != nil {
				return err
			}

			for _, a := range rows {
				if err := r.rename(names[a.ID], a.Name); err != nil {
					return err
				}
			}
		}

		if patch.Benefits != nil {
			names := map[uuid.UUID]string{}
			for _, b := range old.Benefits {
				names[b.ID] = b.Name
			}

			rows := *patch.Benefits
			for i := range rows {
				rows[i].HouseholdID = householdID
				if _, ok := names[rows[i].ID]; !ok {
					rows[i].ID = uuid.Nil
				}
			}

			if err := replaceAll(tx, householdID, rows); err != nil {
				return err
			}

			for _, b := range rows {
				if err := r.rename(names[b.ID], b.Name); err != nil {
					return err
				}
			}
		}

		if patch.Cards != nil {
			names := map[uuid.UUID]string{}
			for _, c := range old.Cards {
				names[c.ID] = c.Name
			}

			rows := *patch.Cards
			for i := range rows {
				rows[i].HouseholdID = householdID
				if _, ok := names[rows[i].ID]; !ok {
					rows[i].ID = uuid.Nil
				}
			}

			if err := replaceAll(tx, householdID, rows); err != nil {
				return err
			}

			for _, c := range rows {
				if err := r.rename(names[c.ID], c.Name); err != nil {
					return err
				}
			}
		}

		// Bills in the patch are taken as sent, after the renames
		if err := r.apply(); err != nil {
			return err
		}

		if patch.RecurringBills != nil {
			ids := map[uuid.UUID]bool{}
			for _, b := range old.RecurringBills {
				ids[b.ID] = true
			}

			rows := *patch.RecurringBills
			for i := range rows {
				rows[i].HouseholdID = householdID
				if !ids[rows[i].ID] {
					rows[i].ID = uuid.Nil
				}
			}

			if err := replaceAll(tx, householdID, rows); err != nil {
				return err
			}
		}

		if patch.CategoryOverrides != nil {
			rows := *patch.CategoryOverrides
			for i := range rows {
				rows[i].HouseholdID = householdID
				rows[i].ID = uuid.Nil
			}

			if err := replaceAll(tx, householdID, rows); err != nil {
				return err
			}
		}

		c, err = loadConfig(tx, householdID)
		return err
	})

	return c, err
}

// replaceAll deletes all rows of T for the household and creates rows.
func replaceAll[T any](tx *gorm.DB, householdID uuid.UUID, rows []T) error {
	err := tx.Where("household_id = ?", householdID).Delete(new(T)).Error
	if err != nil {
		return err
	}

	for i := range rows {
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// renamer carries source renames over to transactions and recurring bills.
// A rename records the rows carrying the old name when it is queued and
// apply rewrites exactly those rows, so names swapped in one write keep
// their histories apart.
type renamer struct {
	tx          *gorm.DB
	householdID uuid.UUID
	pending     []pendingRename
	count       int
}

type pendingRename struct {
	from, to     string
	transactions []uuid.UUID
	bills        []uuid.UUID
}

// renameBatch bounds the number of ids in one UPDATE statement.
const renameBatch = 500

func (r *renamer) rename(from, to string) error {
	if from == "" || from == to {
		return nil
	}

	p := pendingRename{from: from, to: to}

	err := r.tx.Model(&models.Transaction{}).Where("household_id = ? AND source = ?", r.householdID, from).Pluck("id", &p.transactions).Error
	if err != nil {
		return err
	}

	err = r.tx.Model(&models.RecurringBill{}).Where("household_id = ? AND source = ?", r.householdID, from).Pluck("id", &p.bills).Error
	if err != nil {
		return err
	}

	r.pending = append(r.pending, p)
	return nil
}

// apply writes the queued renames. It fails if a new name is still carried
// by transactions that no rename moves away, e.g. the history of a source
// that was removed: renaming onto it would merge both histories.
func (r *renamer) apply() error {
	if len(r.pending) == 0 {
		return nil
	}

	moved := map[uuid.UUID]bool{}
	for _, p := range r.pending {
		for _, id := range p.transactions {
			moved[id] = true
		}
	}

	for _, p := range r.pending {
		var carrying []uuid.UUID
		err := r.tx.Model(&models.Transaction{}).Where("household_id = ? AND source = ?", r.householdID, p.to).Pluck("id", &carrying).Error
		if err != nil {
			return err
		}

		for _, id := range carrying {
			if !moved[id] {
				return fmt.Errorf("%w: %q cannot be renamed to %q, there are transactions of another source with that name", models.ErrValidation, p.from, p.to)
			}
		}
	}

	for _, p := range r.pending {
		if err := setSource(r.tx, &models.Transaction{}, p.transactions, p.to); err != nil {
			return err
		}
		if err := setSource(r.tx, &models.RecurringBill{}, p.bills, p.to); err != nil {
			return err
		}
	}

	r.count += len(r.pending)
	r.pending = nil
	return nil
}

// setSource sets the source of the rows of model with the ids.
func setSource(tx *gorm.DB, model any, ids []uuid.UUID, source string) error {
	for start := 0; start < len(ids); start += renameBatch {
		end := min(start+renameBatch, len(ids))

		err := tx.Model(model).Where("id IN ?", ids[start:end]).UpdateColumn("source", source).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// checkSourceNames verifies that no two accounts, benefits or cards of the
// household share a name.
func checkSourceNames(tx *gorm.DB, householdID uuid.UUID) error {
	var names []string
	for _, model := range []any{&models.Account{}, &models.Benefit{}, &models.Card{}} {
		var n []string
		err := tx.Model(model).Where("household_id = ?", householdID).Pluck("name", &n).Error
		if err != nil {
			return err
		}
		names = append(names, n...)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return models.ErrSourceNameNotUnique
		}
		seen[name] = true
	}
	return nil
}

// SeedDefaultConfig creates the starter configuration of a new household.
func SeedDefaultConfig(tx *gorm.DB, householdID uuid.UUID) error {
	for _, name := range []string{"Checking", "Wallet"} {
		err := tx.Create(&models.Account{HouseholdID: householdID, Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteHouseholdData deletes all transactions and the configuration of the household.
func DeleteHouseholdData(tx *gorm.DB, householdID uuid.UUID) error {
	for _, model := range []any{&models.Transaction{}, &models.Account{}, &models.Benefit{}, &models.Card{}, &models.RecurringBill{}, &models.CategoryOverride{}} {
		err := tx.Where("household_id = ?", householdID).Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}
