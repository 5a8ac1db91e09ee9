package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePruner struct {
	mu          sync.Mutex
	auditCuts   []time.Time
	tokenSweeps []time.Time
	err         error
}

func (f *fakePruner) DeleteOlderThan(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditCuts = append(f.auditCuts, cutoff)
	return 3, f.err
}

func (f *fakePruner) DeleteExpiredRefreshTokens(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenSweeps = append(f.tokenSweeps, now)
	return 1, f.err
}

func (f *fakePruner) sweeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokenSweeps)
}

func TestRetentionWorker_RunOnce(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, p, time.Hour, 30*24*time.Hour, zap.NewNop())
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	w.RunOnce()

	assert.Equal(t, []time.Time{now.Add(-30 * 24 * time.Hour)}, p.auditCuts)
	assert.Equal(t, []time.Time{now}, p.tokenSweeps)
}

func TestRetentionWorker_ZeroRetentionKeepsAudit(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, p, time.Hour, 0, zap.NewNop())

	w.RunOnce()

	assert.Empty(t, p.auditCuts)
	assert.Len(t, p.tokenSweeps, 1)
}

func TestRetentionWorker_ErrorsDoNotStopSweep(t *testing.T) {
	p := &fakePruner{err: errStoreDown}
	w := NewRetentionWorker(p, p, time.Hour, time.Hour, zap.NewNop())

	w.RunOnce()

	assert.Len(t, p.auditCuts, 1)
	assert.Len(t, p.tokenSweeps, 1)
}

func TestRetentionWorker_StartStopsOnCancel(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, p, 10*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.sweeps() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestRetentionWorker_DisabledInterval(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, p, 0, time.Hour, zap.NewNop())

	w.Start(context.Background())

	assert.Zero(t, p.sweeps())
}
