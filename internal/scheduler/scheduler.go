// Package scheduler runs periodic rate syncs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Syncer performs a sync when the stored rates are no longer fresh.
type Syncer interface {
	SyncIfStale(ctx context.Context) bool
}

// Scheduler triggers Syncer.SyncIfStale on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	syncer Syncer
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New parses spec (standard five-field cron or a descriptor such as "@every 1h")
// and registers the sync job. Overlapping runs are skipped.
func New(spec string, syncer Syncer, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{logger}),
		cron.SkipIfStillRunning(cronLogger{logger}),
	))

	s := &Scheduler{
		cron:   c,
		syncer: syncer,
		logger: logger,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if _, err := c.AddFunc(spec, s.run); err != nil {
		s.cancel()
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	started := time.Now()
	fetched := s.syncer.SyncIfStale(s.ctx)
	s.logger.Info("scheduled sync finished",
		"fetched", fetched,
		"duration", time.Since(started),
	)
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("sync scheduler started", "next", s.Next())
}

// Next returns the time of the next scheduled run.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop cancels an in-flight sync and waits for it to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
