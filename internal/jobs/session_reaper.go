package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"intervue/internal/repositories"
)

// SessionReaperJob periodically marks interview sessions that have been
// in progress for longer than the TTL as abandoned, so stale sessions do
// not pollute user history or hold locks on their question sequences.
type SessionReaperJob struct {
	sessions *repositories.SessionRepository
	config   *ReaperConfig
	cron     *cron.Cron
	logger   *zap.Logger
}

// ReaperConfig contains configuration for the reaper job.
type ReaperConfig struct {
	Schedule   string        // cron schedule, e.g. "@every 1h"
	SessionTTL time.Duration // age after which an in-progress session is abandoned
}

func NewSessionReaperJob(sessions *repositories.SessionRepository, config *ReaperConfig, logger *zap.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		sessions: sessions,
		config:   config,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start schedules the reaper. It returns an error if the schedule
// expression cannot be parsed.
func (srj *SessionReaperJob) Start() error {
	_, err := srj.cron.AddFunc(srj.config.Schedule, func() {
		if err := srj.RunOnce(context.Background()); err != nil {
			srj.logger.Error("session reaper run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session reaper: %w", err)
	}

	srj.cron.Start()
	srj.logger.Info("session reaper started",
		zap.String("schedule", srj.config.Schedule),
		zap.Duration("session_ttl", srj.config.SessionTTL))

	return nil
}

// Stop stops the scheduler. Already-running job invocations finish.
func (srj *SessionReaperJob) Stop() {
	if srj.cron != nil {
		srj.cron.Stop()
		srj.logger.Info("session reaper stopped")
	}
}

// RunOnce performs a single sweep. Exposed for on-demand runs.
func (srj *SessionReaperJob) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-srj.config.SessionTTL)

	reaped, err := srj.sessions.AbandonStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to abandon stale sessions: %w", err)
	}

	if reaped > 0 {
		srj.logger.Info("abandoned stale sessions",
			zap.Int64("count", reaped),
			zap.Time("cutoff", cutoff))
	}

	return nil
}
