package cron

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"eventkompass/services/metrics"
	"eventkompass/services/session"
	"eventkompass/utils"
)

const (
	sweepSchedule       = "@every 5m"
	redisHealthSchedule = "@every 30s"
	pruneSchedule       = "@every 10m"

	defaultLimiterIdle = 10 * time.Minute
)

// Pruner drops per-client state that has been idle for longer than idle.
type Pruner interface {
	Prune(idle time.Duration) int
}

// Jobs selects the housekeeping work. Nil fields schedule nothing.
type Jobs struct {
	Sessions    session.Sweeper
	SessionTTL  time.Duration
	Redis       *redis.Client
	Limiter     Pruner
	LimiterIdle time.Duration
}

// Worker runs the periodic housekeeping jobs.
type Worker struct {
	cron   *robfig.Cron
	logger *zap.Logger
}

// NewWorker schedules the session sweep for stores that expire in process, the
// Redis health check behind /health and the pruning of idle rate limiters.
func NewWorker(jobs Jobs, m *metrics.Service, logger *zap.Logger) (*Worker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := robfig.New()

	if jobs.Sessions != nil {
		if _, err := c.AddFunc(sweepSchedule, func() { SweepSessions(jobs.Sessions, jobs.SessionTTL, m, logger) }); err != nil {
			return nil, err
		}
	}
	if jobs.Redis != nil {
		if _, err := c.AddFunc(redisHealthSchedule, func() { CheckRedis(jobs.Redis, logger) }); err != nil {
			return nil, err
		}
	}
	if jobs.Limiter != nil {
		idle := jobs.LimiterIdle
		if idle <= 0 {
			idle = defaultLimiterIdle
		}
		if _, err := c.AddFunc(pruneSchedule, func() { PruneLimiters(jobs.Limiter, idle, logger) }); err != nil {
			return nil, err
		}
	}
	return &Worker{cron: c, logger: logger}, nil
}

func (w *Worker) Start() {
	w.logger.Info("Housekeeping worker started", zap.Int("jobs", len(w.cron.Entries())))
	w.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (w *Worker) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
		w.logger.Warn("Housekeeping worker stop timed out")
	}
}

// SweepSessions drops sessions idle for longer than ttl.
func SweepSessions(sweeper session.Sweeper, ttl time.Duration, m *metrics.Service, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}
	removed := sweeper.Sweep(time.Now().Add(-ttl))
	m.SetActiveSessions(sweeper.Len())
	if removed > 0 {
		logger.Info("Expired sessions removed", zap.Int("removed", removed), zap.Int("remaining", sweeper.Len()))
	}
	return removed
}

// CheckRedis refreshes the health snapshot served by /health.
func CheckRedis(client *redis.Client, logger *zap.Logger) utils.HealthStatus {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	status := utils.CheckHealth(ctx, client)
	if status.Status != "ok" {
		logger.Warn("Redis connection lost", zap.String("status", status.Status))
	}
	return status
}

// PruneLimiters forgets rate limiters of clients that went quiet.
func PruneLimiters(p Pruner, idle time.Duration, logger *zap.Logger) int {
	removed := p.Prune(idle)
	if removed > 0 && logger != nil {
		logger.Debug("Idle rate limiters pruned", zap.Int("removed", removed))
	}
	return removed
}
