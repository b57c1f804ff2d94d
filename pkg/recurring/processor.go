// Package recurring turns recurring bills into transactions when they are due.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var materializedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "recurring_materialized_total",
	Help: "Number of transactions created from recurring bills",
})

// Collectors returns the prometheus collectors of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{materializedTotal}
}

// Processor materializes due recurring bills.
type Processor struct {
	ledger *store.Ledger
}

func NewProcessor(l *store.Ledger) *Processor {
	return &Processor{ledger: l}
}

// DueDate returns the date the bill is due in month.
func DueDate(bill models.RecurringBill, month types.Month) types.Date {
	return month.Day(bill.DueDay)
}

// IsDue reports whether the bill needs a transaction for the month of now:
// it is active, its due day has been reached and it has not been
// materialized for the month yet.
//
// A bill that has never been materialized starts with the month it was
// created in, unless it was created after that month's due date. Then the
// first transaction is the one of the following month.
func IsDue(bill models.RecurringBill, now time.Time) bool {
	if !bill.Active {
		return false
	}

	month := types.MonthOf(now)
	if !bill.LastMaterialized.IsZero() && !bill.LastMaterialized.Before(month) {
		return false
	}

	due := DueDate(bill, month)
	if bill.LastMaterialized.IsZero() {
		created := bill.CreatedAt.In(now.Location())
		if month.Contains(created) && types.DateOf(created).After(due) {
			return false
		}
	}

	return !types.DateOf(now).Before(due)
}

// ProcessDue materializes the due bills of all households and returns the
// number of transactions created. Failing bills are logged and skipped.
func (p *Processor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	return p.process(ctx, now, uuid.Nil)
}

// ProcessHousehold materializes the due bills of one household.
func (p *Processor) ProcessHousehold(ctx context.Context, householdID uuid.UUID, now time.Time) (int, error) {
	if householdID == uuid.Nil {
		return 0, nil
	}
	return p.process(ctx, now, householdID)
}

func (p *Processor) process(ctx context.Context, now time.Time, householdID uuid.UUID) (int, error) {
	query := p.ledger.DB().WithContext(ctx).Where("active = ?", true)
	if householdID != uuid.Nil {
		query = query.Where("household_id = ?", householdID)
	}

	var bills []models.RecurringBill
	if err := query.Find(&bills).Error; err != nil {
		return 0, fmt.Errorf("failed to get active recurring bills: %w", err)
	}

	count := 0
	for _, bill := range bills {
		if !IsDue(bill, now) {
			continue
		}

		created, err := p.materialize(ctx, bill.HouseholdID, bill.ID, now)
		if err != nil {
			log.Error().Err(err).Str("household", bill.HouseholdID.String()).Str("bill", bill.ID.String()).Msg("failed to materialize recurring bill")
			continue
		}

		if created {
			count++
			materializedTotal.Inc()
		}
	}

	log.Debug().Int("count", count).Int("active", len(bills)).Msg("processed recurring bills")
	return count, nil
}

// materialize creates the transaction for the bill and marks the month as
// done in the same database transaction.
func (p *Processor) materialize(ctx context.Context, householdID, id uuid.UUID, now time.Time) (created bool, err error) {
	err = p.ledger.Within(ctx, householdID, func(tx *gorm.DB) error {
		created = false

		// Another run may have materialized the bill in the meantime
		var bill models.RecurringBill
		if err := tx.Where("id = ? AND household_id = ?", id, householdID).First(&bill).Error; err != nil {
			return err
		}

		if !IsDue(bill, now) {
			return nil
		}

		month := types.MonthOf(now)
		t := bill.Transaction(DueDate(bill, month))
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		bill.LastMaterialized = month
		if err := tx.Save(&bill).Error; err != nil {
			return err
		}

		log.Info().Str("household", householdID.String()).Str("bill", bill.ID.String()).Str("month", month.String()).Msg("materialized recurring bill")
		created = true
		return nil
	})

	return created, err
}
