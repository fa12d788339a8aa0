package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nexus/config"
	"nexus/internal/delivery"
	"nexus/internal/domain/lifecycle"
	"nexus/internal/errors"
	"nexus/internal/usecase"

	"go.uber.org/fx"
)

// sessionCleanupWorker periodically removes expired sessions from the store.
type sessionCleanupWorker struct {
	sessions usecase.SessionUsecase
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	done    chan struct{}
}

// ServerParams holds dependencies for the cleanup worker
type ServerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	SessionUC usecase.SessionUsecase
}

// NewServer creates the session cleanup worker
func NewServer(params ServerParams) (delivery.Delivery, error) {
	if params.Cfg.Session == nil || params.Cfg.Session.CleanupInterval <= 0 {
		return nil, errors.New("session cleanup interval must be positive")
	}

	srv := &sessionCleanupWorker{
		sessions: params.SessionUC,
		interval: params.Cfg.Session.CleanupInterval,
		logger:   params.Logger,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve runs a cleanup immediately and then on every tick until ctx is done or the worker is stopped.
// A worker stopped before Serve runs returns immediately.
func (s *sessionCleanupWorker) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped || s.started {
		s.mu.Unlock()

		return nil
	}
	s.started = true
	s.mu.Unlock()

	defer close(s.done)

	s.logger.Info("Starting session cleanup worker", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *sessionCleanupWorker) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	deleted, err := s.sessions.CleanupExpiredSessions(runCtx)
	if err != nil {
		// Retried on the next tick.
		s.logger.Error("Session cleanup failed", slog.Any("error", err))

		return
	}

	s.logger.Debug("Session cleanup finished", slog.Int64("deleted_count", deleted))
}

// stop signals Serve to return and waits for an in-flight cleanup to finish.
func (s *sessionCleanupWorker) stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()

		return nil
	}
	s.stopped = true
	started := s.started
	close(s.stopCh)
	s.mu.Unlock()

	s.logger.Info("Shutting down session cleanup worker")
	if !started {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.done:
		return nil
	case <-shutdownCtx.Done():
		return errors.Wrap(shutdownCtx.Err(), "session cleanup worker did not stop in time")
	}
}
