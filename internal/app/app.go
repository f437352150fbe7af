package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/config"
	v1 "github.com/kurochkinivan/article_cleanup/internal/controller/http/v1"
	"github.com/kurochkinivan/article_cleanup/internal/infrastructure/report_generator"
	"github.com/kurochkinivan/article_cleanup/internal/infrastructure/workbook"
	"github.com/kurochkinivan/article_cleanup/internal/metrics"
	"github.com/kurochkinivan/article_cleanup/internal/repository/memory"
	"github.com/kurochkinivan/article_cleanup/internal/session"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.Int("preview_rows", a.cfg.App.PreviewRows),
		slog.Int64("max_upload_size", a.cfg.App.MaxUploadSize),
		slog.Duration("session_ttl", a.cfg.App.SessionTTL),
	)

	key, err := csrfKey(a.cfg.HTTP.CSRFKey)
	if err != nil {
		return err
	}

	m := metrics.New()
	service := NewService(a.log, a.cfg.App.PreviewRows, m)
	sessions := memory.NewSessionsRepository()

	sweeper := session.NewSweeper(a.log, a.cfg.App.SessionTTL, a.cfg.App.SweepInterval, sessions)
	server := v1.NewServer(a.log, a.cfg, key, v1.Dependencies{
		Cleaner:        service,
		Sessions:       sessions,
		MetricsHandler: m.Handler(),
	})

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "sweeper started")
		return sweeper.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server", slog.String("addr", server.Addr()))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "app stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "app stopped gracefully")

	return nil
}

func csrfKey(hexKey string) ([]byte, error) {
	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode csrf key: %w", err)
		}
		return key, nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate csrf key: %w", err)
	}

	return key, nil
}

// NewService wires the cleanup service with its exporters.
func NewService(log *slog.Logger, previewRows int, recorder cleanup.MetricsRecorder) *cleanup.Service {
	return cleanup.NewService(
		log,
		previewRows,
		report_generator.New(),
		workbook.NewExporter(),
		recorder,
	)
}
