// Package sweeper reclaims seats whose reservation hold expired without
// the order being confirmed.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/entradalive/ticketing/internal/service"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	reservationSvc service.ReservationService
	cron           *cron.Cron
	logger         *slog.Logger
}

func New(reservationSvc service.ReservationService, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		reservationSvc: reservationSvc,
		cron:           cron.New(),
		logger:         logger,
	}
}

// Start schedules the reclaim job every minute. Holds expire after ten
// minutes, so a seat is returned to the pool at most one minute late.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("* * * * *", s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("hold sweeper started", "interval", "1m")
	return nil
}

// Stop waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("hold sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reclaimed, err := s.reservationSvc.ReclaimExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("hold sweep failed", "error", err)
		return
	}
	if reclaimed > 0 {
		s.logger.Info("expired holds reclaimed", "seats", reclaimed)
	}
}
