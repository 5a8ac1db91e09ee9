package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type auditPruner interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type refreshTokenPruner interface {
	DeleteExpiredRefreshTokens(now time.Time) (int64, error)
}

// RetentionWorker periodically removes audit entries past their retention
// and refresh tokens that can no longer be used.
type RetentionWorker struct {
	audit     auditPruner
	tokens    refreshTokenPruner
	interval  time.Duration
	retention time.Duration // zero keeps audit entries forever
	log       *zap.Logger
	now       func() time.Time
}

func NewRetentionWorker(audit auditPruner, tokens refreshTokenPruner, interval, retention time.Duration, log *zap.Logger) *RetentionWorker {
	return &RetentionWorker{
		audit:     audit,
		tokens:    tokens,
		interval:  interval,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Start runs a sweep immediately and then on every tick until ctx is done.
func (w *RetentionWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info("Retention worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("audit_retention", w.retention))

	w.RunOnce()
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Retention worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single sweep. Failures are logged and retried next tick.
func (w *RetentionWorker) RunOnce() {
	now := w.now()

	if w.retention > 0 {
		removed, err := w.audit.DeleteOlderThan(now.Add(-w.retention))
		if err != nil {
			w.log.Warn("Failed to prune audit logs", zap.Error(err))
		} else if removed > 0 {
			w.log.Info("Pruned audit logs", zap.Int64("removed", removed))
		}
	}

	removed, err := w.tokens.DeleteExpiredRefreshTokens(now)
	if err != nil {
		w.log.Warn("Failed to prune refresh tokens", zap.Error(err))
	} else if removed > 0 {
		w.log.Info("Pruned refresh tokens", zap.Int64("removed", removed))
	}
}
