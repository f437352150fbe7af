package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type SessionsPurger interface {
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int, error)
}

// Sweeper periodically removes sessions idle for longer than the TTL.
type Sweeper struct {
	log      *slog.Logger
	ttl      time.Duration
	interval time.Duration
	purger   SessionsPurger
	now      func() time.Time
}

func NewSweeper(log *slog.Logger, ttl, interval time.Duration, purger SessionsPurger) *Sweeper {
	return &Sweeper{
		log:      log,
		ttl:      ttl,
		interval: interval,
		purger:   purger,
		now:      time.Now,
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.log.DebugContext(ctx, "sweep cycle started")

			if err := s.sweep(ctx); err != nil {
				s.log.ErrorContext(ctx, "failed to sweep sessions", slog.String("err", err.Error()))
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) error {
	deleted, err := s.purger.DeleteExpiredSessions(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	if deleted > 0 {
		s.log.InfoContext(ctx, "expired sessions removed", slog.Int("sessions_count", deleted))
	}

	return nil
}
