package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
)

// subscription delivers snapshots of one household to a channel. Only the
// latest snapshot is kept when the reader falls behind.
type subscription struct {
	mu     sync.Mutex
	ch     chan []models.Transaction
	closed bool
}

func (s *subscription) deliver(snapshot []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Drop a stale snapshot the reader has not picked up yet
	select {
	case <-s.ch:
	default:
	}

	s.ch <- snapshot
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	close(s.ch)
}

// Subscribe returns a channel that receives the full transaction set of the
// household, first immediately and then after every write. The channel is
// closed when ctx is done.
func (l *Ledger) Subscribe(ctx context.Context, householdID uuid.UUID) (<-chan []models.Transaction, error) {
	sub := &subscription{ch: make(chan []models.Transaction, 1)}

	unsubscribe := l.OnChange(func(id uuid.UUID, snapshot []models.Transaction) {
		if id == householdID {
			sub.deliver(snapshot)
		}
	})

	snapshot, err := l.Snapshot(ctx, householdID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	// A write between registering and loading may already have delivered a
	// newer snapshot
	sub.mu.Lock()
	if len(sub.ch) == 0 {
		sub.ch <- snapshot
	}
	sub.mu.Unlock()

	go func() {
		<-ctx.Done()
		unsubscribe()
		sub.close()
	}()

	return sub.ch, nil
}
