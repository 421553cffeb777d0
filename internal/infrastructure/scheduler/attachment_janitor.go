// Package scheduler hosts background jobs that run on a timer alongside
// the HTTP server.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	attachmentapp "github.com/proforma/backend/internal/application/attachment"
)

// AttachmentJanitor periodically removes pending attachments whose upload
// was never confirmed, together with any bytes left in object storage.
type AttachmentJanitor struct {
	service   *attachmentapp.AttachmentService
	logger    *zap.Logger
	config    AttachmentJanitorConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// AttachmentJanitorConfig holds configuration for the attachment janitor
type AttachmentJanitorConfig struct {
	// Enabled determines if the janitor is active
	Enabled bool

	// Interval is how often a sweep runs
	Interval time.Duration

	// PendingTTL is how long a pending attachment may wait for confirmation
	// before it is considered abandoned
	PendingTTL time.Duration

	// BatchSize caps how many records one sweep removes
	BatchSize int

	// SweepTimeout is the maximum time for a single sweep
	SweepTimeout time.Duration
}

// DefaultAttachmentJanitorConfig returns default configuration
func DefaultAttachmentJanitorConfig() AttachmentJanitorConfig {
	return AttachmentJanitorConfig{
		Enabled:      true,
		Interval:     1 * time.Hour,
		PendingTTL:   24 * time.Hour,
		BatchSize:    100,
		SweepTimeout: 5 * time.Minute,
	}
}

// NewAttachmentJanitor creates a new attachment janitor
func NewAttachmentJanitor(
	service *attachmentapp.AttachmentService,
	logger *zap.Logger,
	config AttachmentJanitorConfig,
) *AttachmentJanitor {
	return &AttachmentJanitor{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start starts the sweep loop
func (j *AttachmentJanitor) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		return nil
	}
	if !j.config.Enabled {
		j.mu.Unlock()
		j.logger.Info("Attachment janitor is disabled")
		return nil
	}
	j.isRunning = true
	j.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.runLoop(ctx)

	j.logger.Info("Attachment janitor started",
		zap.Duration("interval", j.config.Interval),
		zap.Duration("pending_ttl", j.config.PendingTTL),
	)

	return nil
}

// Stop gracefully stops the janitor
func (j *AttachmentJanitor) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = false
	j.mu.Unlock()

	if j.cancel != nil {
		j.cancel()
	}

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		j.logger.Info("Attachment janitor stopped gracefully")
		return nil
	case <-ctx.Done():
		j.logger.Warn("Attachment janitor stop timed out")
		return ctx.Err()
	}
}

func (j *AttachmentJanitor) runLoop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("Attachment janitor loop stopping")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass. Exposed so operators can trigger it outside
// the timer.
func (j *AttachmentJanitor) Sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, j.config.SweepTimeout)
	defer cancel()

	cutoff := time.Now().Add(-j.config.PendingTTL)
	purged, err := j.service.PurgeStalePending(sweepCtx, cutoff, j.config.BatchSize)
	if err != nil {
		j.logger.Error("Attachment sweep failed",
			zap.Int("purged", purged),
			zap.Error(err),
		)
		return
	}
	if purged > 0 {
		j.logger.Info("Attachment sweep removed abandoned uploads",
			zap.Int("purged", purged),
			zap.Time("cutoff", cutoff),
		)
	}
}
