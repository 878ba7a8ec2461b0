// Package services hosts long-running ticket background jobs.
package services

import (
	"context"
	"time"

	ticketusecases "warden/internal/application/ticket/usecases"
	"warden/internal/shared/goroutine"
	"warden/internal/shared/logger"
)

// Sweeper periodically runs the stale ticket sweep. One run fires immediately
// on start so a long-stopped bot catches up without waiting a full interval.
type Sweeper struct {
	sweep    *ticketusecases.SweepStaleUseCase
	interval time.Duration
	logger   logger.Interface

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(sweep *ticketusecases.SweepStaleUseCase, interval time.Duration, logger logger.Interface) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: interval,
		logger:   logger,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	goroutine.SafeGo(s.logger, "ticket-sweeper", func() {
		defer close(s.done)

		s.run(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	})

	s.logger.Infow("ticket sweeper started", "interval", s.interval.String())
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Infow("ticket sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	if _, err := s.sweep.Execute(ctx); err != nil {
		s.logger.Errorw("stale ticket sweep failed", "error", err)
	}
}
