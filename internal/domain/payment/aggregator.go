package payment

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	// DefaultExpandConcurrency bounds the per-payment fan-out when expanding
	// occurrences across the whole collection.
	DefaultExpandConcurrency = 4

	// defaultRefreshInterval is the fallback re-computation cadence for
	// watchers when no change notification arrives.
	defaultRefreshInterval = 5 * time.Minute
)

// expandAll computes occurrences for every payment concurrently. Each
// payment's expansion is independent; a semaphore bounds the fan-out and a
// WaitGroup joins the results before returning.
func (s *Service) expandAll(ctx context.Context, payments []*ScheduledPayment, start, end time.Time) ([]PlannedOccurrence, error) {
	if len(payments) == 0 {
		return nil, nil
	}

	sem := make(chan struct{}, DefaultExpandConcurrency)
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		out      []PlannedOccurrence
		firstErr error
	)

	for _, p := range payments {
		wg.Add(1)
		go func(p *ScheduledPayment) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				if firstErr == nil {
					firstErr = ctx.Err()
				}
				mu.Unlock()
				return
			}

			rules, err := s.rules.ListByPaymentID(ctx, p.ID)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			occs := GenerateOccurrences(p, rules, start, end)

			mu.Lock()
			out = append(out, occs...)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Aggregator continuously re-derives the planned occurrences for a window
// whenever the underlying payment collection changes. Recomputation is a full
// re-expansion; no incremental diffing is attempted at the expected data
// volumes.
type Aggregator struct {
	svc             *Service
	refreshInterval time.Duration
}

// NewAggregator creates an aggregator over the given payment service
func NewAggregator(svc *Service) *Aggregator {
	return &Aggregator{svc: svc, refreshInterval: defaultRefreshInterval}
}

// Watch emits the full occurrence set for [start, end] once on start and
// again whenever a signal arrives on changes (or the refresh interval
// elapses). The returned channel closes when ctx is cancelled; in-flight
// computation is abandoned cleanly since expansion is pure.
func (a *Aggregator) Watch(ctx context.Context, changes <-chan struct{}, start, end time.Time) <-chan []PlannedOccurrence {
	out := make(chan []PlannedOccurrence, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(a.refreshInterval)
		defer ticker.Stop()

		emit := func() {
			occs, err := a.svc.Occurrences(ctx, start, end)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("Occurrence aggregation failed: %v", err)
				}
				return
			}

			select {
			case out <- occs:
			case <-ctx.Done():
			}
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				emit()
			case <-ticker.C:
				emit()
			}
		}
	}()

	return out
}
