// Package scheduler contains background jobs driven by the server process.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"go.uber.org/zap"
)

// KeepAliveScheduler periodically upserts the keep_alive timestamp so that
// free-tier databases with idle shutdown stay reachable.
type KeepAliveScheduler struct {
	repo      rental.KeepAliveRepository
	logger    *zap.Logger
	config    KeepAliveSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// KeepAliveSchedulerConfig holds configuration for the keep-alive scheduler
type KeepAliveSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is the time between pings
	Interval time.Duration

	// PingTimeout is the maximum time for a single ping
	PingTimeout time.Duration
}

// DefaultKeepAliveSchedulerConfig returns default configuration
func DefaultKeepAliveSchedulerConfig() KeepAliveSchedulerConfig {
	return KeepAliveSchedulerConfig{
		Enabled:     true,
		Interval:    10 * time.Minute,
		PingTimeout: 30 * time.Second,
	}
}

// NewKeepAliveScheduler creates a new keep-alive scheduler
func NewKeepAliveScheduler(
	repo rental.KeepAliveRepository,
	logger *zap.Logger,
	config KeepAliveSchedulerConfig,
) (*KeepAliveScheduler, error) {
	if config.Enabled && config.Interval <= 0 {
		return nil, ErrInvalidConfig
	}
	if config.PingTimeout <= 0 {
		config.PingTimeout = 30 * time.Second
	}
	return &KeepAliveScheduler{
		repo:   repo,
		logger: logger,
		config: config,
	}, nil
}

// Start starts the keep-alive scheduler
func (s *KeepAliveScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Keep-alive scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Keep-alive scheduler started",
		zap.Duration("interval", s.config.Interval),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *KeepAliveScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Keep-alive scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Keep-alive scheduler stop timed out")
		return ctx.Err()
	}
}

// run pings immediately on startup, then on every interval tick
func (s *KeepAliveScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.executePing(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Keep-alive loop stopping")
			return
		case <-ticker.C:
			s.executePing(ctx)
		}
	}
}

// executePing records a single keep-alive timestamp
func (s *KeepAliveScheduler) executePing(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.config.PingTimeout)
	defer cancel()

	startTime := time.Now()
	err := s.repo.Ping(pingCtx, startTime.UTC())
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Keep-alive ping failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Keep-alive ping recorded",
		zap.Duration("duration", duration),
	)
}

// TriggerImmediatePing triggers an immediate ping run
func (s *KeepAliveScheduler) TriggerImmediatePing(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.executePing(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *KeepAliveScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
