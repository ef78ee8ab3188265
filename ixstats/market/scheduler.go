package market

import (
	"context"
	"log/slog"
	"time"

	"github.com/ixstats/engine/ixstats/clock"
	"github.com/ixstats/engine/ixstats/logger"
	"golang.org/x/sync/errgroup"
)

const (
	cleanupInterval    = 15 * time.Second
	finalizeTimeout    = 30 * time.Second
	maxParallelSettles = 4
)

// Scheduler sweeps for naturally expired listings and settles them. End times
// are always re-read from the store against the game clock, so a listing
// whose deadline was pushed by the anti-snipe rule is simply skipped.
type Scheduler struct {
	manager  *Manager
	clk      clock.Clock
	ticker   *time.Ticker
	shutdown chan struct{}
}

func NewScheduler(manager *Manager, clk clock.Clock) *Scheduler {
	return &Scheduler{
		manager:  manager,
		clk:      clk,
		ticker:   time.NewTicker(cleanupInterval),
		shutdown: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) run() {
	defer s.ticker.Stop()

	for {
		select {
		case <-s.ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
			if err := s.FinalizeExpired(ctx); err != nil {
				logger.LogError("Failed to finalize expired listings", err)
			}
			cancel()
		case <-s.shutdown:
			return
		}
	}
}

// FinalizeExpired settles every listing past its end time. Settlements run in
// parallel; each one is its own transaction, so one failure does not hold the
// rest back.
func (s *Scheduler) FinalizeExpired(ctx context.Context) error {
	expired, err := s.manager.repo.GetExpired(ctx, s.clk.Now())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSettles)

	for _, listing := range expired {
		g.Go(func() error {
			if err := s.manager.FinalizeListing(gctx, listing.ID); err != nil {
				logger.LogError("Failed to settle expired listing", err,
					slog.String("listing_code", listing.ListingCode))
			}
			return nil
		})
	}

	return g.Wait()
}

func (s *Scheduler) Shutdown() {
	close(s.shutdown)
	slog.Info("Market scheduler shutdown completed", slog.String("type", "market"))
}
