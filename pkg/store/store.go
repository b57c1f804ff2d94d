// Package store persists the household-scoped ledger and configuration.
//
// Every query filters by household id. Calls with uuid.Nil as household
// read nothing and write nothing.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrNoHousehold is returned for writes without a household.
var ErrNoHousehold = fmt.Errorf("%w: no household selected", models.ErrValidation)

var writesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_writes_total",
		Help: "Number of successful writes to the household ledger and configuration",
	},
	[]string{"operation"},
)

// Collectors returns the prometheus collectors of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{writesTotal}
}

// transient reports whether err may go away when the operation is retried.
func transient(err error) bool {
	if errors.Is(err, models.ErrGeneral) {
		return true
	}

	// "sql: database is closed" is hard-coded in the sql module
	msg := err.Error()
	return msg == "sql: database is closed" || strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// newBackOff returns the retry policy for writes: three attempts in total.
func newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond

	return backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)
}

// retry runs op until it succeeds, fails permanently or the attempts are
// exhausted. Only transient errors are retried.
func retry(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil || transient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, newBackOff(ctx))
}

// Atomic runs fn in a database transaction, retrying transient failures.
// If fn fails and the transaction cannot be rolled back, the error wraps
// models.ErrInconsistentState.
func Atomic(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := retry(ctx, func() error {
		return atomic(ctx, db, fn)
	})

	// Errors from opening the transaction do not pass the gorm callbacks
	if err != nil && !errors.Is(err, models.ErrGeneral) && transient(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return models.ErrGeneral
	}
	return err
}

func atomic(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).AnErr("cause", err).Msg("rollback failed")
			return fmt.Errorf("%w: %s", models.ErrInconsistentState, err)
		}
		return err
	}

	return tx.Commit().Error
}
