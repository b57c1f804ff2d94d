package recurring

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler runs the processor periodically.
type Scheduler struct {
	processor *Processor
	interval  time.Duration
}

func NewScheduler(processor *Processor, interval time.Duration) *Scheduler {
	return &Scheduler{processor: processor, interval: interval}
}

// Run processes due bills once immediately and then every interval until
// ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("recurring bill scheduler stopped")
			return nil
		case now := <-ticker.C:
			s.run(ctx, now)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, now time.Time) {
	count, err := s.processor.ProcessDue(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("processing recurring bills failed")
		return
	}

	log.Info().Int("count", count).Time("next", now.Add(s.interval)).Msg("processed recurring bills")
}
