package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listener is called after every committed write with the full current
// transaction set of the household.
type Listener func(householdID uuid.UUID, snapshot []models.Transaction)

// Ledger is the transaction store.
type Ledger struct {
	db *gorm.DB

	mu        sync.RWMutex
	listeners map[uint64]Listener
	next      uint64
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{
		db:        db,
		listeners: make(map[uint64]Listener),
	}
}

// DB returns the database the ledger writes to.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}

// TransactionChanges holds the fields to change on a transaction. Nil
// fields are left untouched.
type TransactionChanges struct {
	Description *string          `json:"description" example:"Groceries"`
	Amount      *decimal.Decimal `json:"amount" example:"17.42"`
	Date        *types.Date      `json:"date" example:"2024-01-15"`
	Kind        *models.Kind     `json:"kind" example:"expense"`
	Source      *string          `json:"source" example:"Checking"`
	Category    *string          `json:"category" example:"Food"`
	Subcategory *string          `json:"subcategory" example:"Groceries"`
	Person      *models.Person   `json:"person" example:"Both"`
	Installment *string          `json:"installment" example:"2/3"`
}

func (c TransactionChanges) apply(t *models.Transaction) {
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Amount != nil {
		t.Amount = *c.Amount
	}
	if c.Date != nil {
		t.Date = *c.Date
	}
	if c.Kind != nil {
		t.Kind = *c.Kind
	}
	if c.Source != nil {
		t.Source = *c.Source
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
	if c.Subcategory != nil {
		t.Subcategory = *c.Subcategory
	}
	if c.Person != nil {
		t.Person = *c.Person
	}
	if c.Installment != nil {
		t.Installment = *c.Installment
	}
}

// classifies reports whether the changes touch the fields checked at entry.
func (c TransactionChanges) classifies() bool {
	return c.Kind != nil || c.Source != nil || c.Category != nil || c.Subcategory != nil
}

// Filter restricts the transactions returned by List.
type Filter struct {
	Source      string
	Kind        models.Kind
	Category    string
	Person      models.Person
	Month       types.Month
	Description string // Glob pattern, case insensitive. "*" matches any sequence of characters
}

// Within runs fn in a database transaction for the household and notifies
// the listeners once it committed.
func (l *Ledger) Within(ctx context.Context, householdID uuid.UUID, fn func(tx *gorm.DB) error) error {
	if householdID == uuid.Nil {
		return ErrNoHousehold
	}

	err := Atomic(ctx, l.db, fn)
	if err != nil {
		return err
	}

	l.notify(ctx, householdID)
	return nil
}

// Append adds a single transaction to the household's ledger.
func (l *Ledger) Append(ctx context.Context, householdID uuid.UUID, t models.Transaction) (models.Transaction, error) {
	created, err := l.AppendMany(ctx, householdID, []models.Transaction{t})
	if err != nil {
		return models.Transaction{}, err
	}
	return created[0], nil
}

// AppendMany adds all transactions or none of them. The checks run on every
// transaction inside the write.
func (l *Ledger) AppendMany(ctx context.Context, householdID uuid.UUID, transactions []models.Transaction, checks ...Check) ([]models.Transaction, error) {
	if len(transactions) == 0 {
		return nil, models.ErrNoTransactions
	}

	var created []models.Transaction
	err := l.Within(ctx, householdID, func(tx *gorm.DB) (err error) {
		created, err = create(tx, householdID, transactions, checks)
		return err
	})
	if err != nil {
		return nil, err
	}

	writesTotal.WithLabelValues("append").Add(float64(len(created)))
	return created, nil
}

// create stores copies of the transactions for the household.
func create(tx *gorm.DB, householdID uuid.UUID, transactions []models.Transaction, checks []Check) ([]models.Transaction, error) {
	created := make([]models.Transaction, len(transactions))
	for i, t := range transactions {
		t.ID = uuid.Nil
		t.HouseholdID = householdID

		if err := runChecks(tx, t, checks); err != nil {
			return nil, err
		}

		if err := tx.Create(&t).Error; err != nil {
			return nil, err
		}
		created[i] = t
	}
	return created, nil
}

// AppendInstallments expands the purchase into n installments and appends
// them as one batch.
func (l *Ledger) AppendInstallments(ctx context.Context, householdID uuid.UUID, template models.Transaction, n int, checks ...Check) ([]models.Transaction, error) {
	installments, err := ledger.ExpandInstallments(template, n)
	if err != nil {
		return nil, err
	}

	return l.AppendMany(ctx, householdID, installments, checks...)
}

// Get returns a single transaction of the household.
func (l *Ledger) Get(ctx context.Context, householdID, id uuid.UUID) (models.Transaction, error) {
	var t models.Transaction
	err := l.db.WithContext(ctx).Where("id = ? AND household_id = ?", id, householdID).First(&t).Error
	return t, err
}

// Update applies the changes to the transaction. The checks only run if the
// changes touch the kind, source or category.
func (l *Ledger) Update(ctx context.Context, householdID, id uuid.UUID, changes TransactionChanges, checks ...Check) (models.Transaction, error) {
	var t models.Transaction
	err := l.Within(ctx, householdID, func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND household_id = ?", id, householdID).First(&t).Error
		if err != nil {
			return err
		}

		changes.apply(&t)
		if changes.classifies() {
			if err := runChecks(tx, t, checks); err != nil {
				return err
			}
		}

		return tx.Save(&t).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	writesTotal.WithLabelValues("update").Inc()
	return t, nil
}

// Remove deletes the transaction.
func (l *Ledger) Remove(ctx context.Context, householdID, id uuid.UUID) error {
	err := l.Within(ctx, householdID, func(tx *gorm.DB) error {
		var t models.Transaction
		err := tx.Where("id = ? AND household_id = ?", id, householdID).First(&t).Error
		if err != nil {
			return err
		}

		return tx.Delete(&t).Error
	})
	if err != nil {
		return err
	}

	writesTotal.WithLabelValues("remove").Inc()
	return nil
}

// List returns the household's transactions matching the filter, most
// recently created first.
func (l *Ledger) List(ctx context.Context, householdID uuid.UUID, filter Filter) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if householdID == uuid.Nil {
		return transactions, nil
	}

	query := l.db.WithContext(ctx).Where(&models.Transaction{
		HouseholdID: householdID,
		Source:      filter.Source,
		Kind:        filter.Kind,
		Category:    filter.Category,
		Person:      filter.Person,
	})

	if !filter.Month.IsZero() {
		query = query.Where("date >= ? AND date < ?", filter.Month.Day(1), filter.Month.AddDate(0, 1).Day(1))
	}

	err := query.Order("created_at DESC, date DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if filter.Description == "" {
		return transactions, nil
	}

	pattern := strings.ToLower(filter.Description)
	matching := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if glob.Glob(pattern, strings.ToLower(t.Description)) {
			matching = append(matching, t)
		}
	}

	return matching, nil
}

// Snapshot returns the full transaction set of the household.
func (l *Ledger) Snapshot(ctx context.Context, householdID uuid.UUID) ([]models.Transaction, error) {
	return l.List(ctx, householdID, Filter{})
}

// OnChange registers a listener for all households. The returned function
// removes it.
func (l *Ledger) OnChange(listener Listener) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.next
	l.next++
	l.listeners[id] = listener

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

// notify delivers the current snapshot of the household to all listeners.
func (l *Ledger) notify(ctx context.Context, householdID uuid.UUID) {
	l.mu.RLock()
	listeners := make([]Listener, 0, len(l.listeners))
	for _, listener := range l.listeners {
		listeners = append(listeners, listener)
	}
	l.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}

	snapshot, err := l.Snapshot(context.WithoutCancel(ctx), householdID)
	if err != nil {
		log.Error().Err(err).Str("household", householdID.String()).Msg("could not load snapshot for listeners")
		return
	}

	for _, listener := range listeners {
		listener(householdID, snapshot)
	}
}
