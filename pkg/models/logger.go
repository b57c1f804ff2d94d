package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration above which a query is logged as a warning.
const slowQuery = 200 * time.Millisecond

// logger writes gorm's output to zerolog. Queries are debug events, slow
// queries warnings and unexpected failures errors.
type logger struct {
	Logger zerolog.Logger
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	if level == gorm_logger.Silent {
		return &logger{Logger: l.Logger.Level(zerolog.Disabled)}
	}
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.Logger.Error().Msgf(s, args...)
}

// expected reports whether err is a normal outcome of a query.
func expected(err error) bool {
	return errors.Is(err, gorm_logger.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrValidation)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	var event *zerolog.Event
	switch {
	case err != nil && !expected(err):
		event = l.Logger.Error().Err(err)
	case elapsed > slowQuery:
		event = l.Logger.Warn().Bool("slow", true)
	default:
		event = l.Logger.Debug()
	}

	// fc renders the statement, skip it when the event is discarded
	if !event.Enabled() {
		return
	}

	sql, rows := fc()
	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Msg("query")
}
