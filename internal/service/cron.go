package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/utils/lock"
)

const sweepLockKey = "cron:lock:sweep"

// CronService runs the sweeper on a schedule inside the server process.
type CronService struct {
	cron     *cron.Cron
	sweeper  *SweeperService
	locker   lock.DistributedLock
	schedule string
	timeout  time.Duration
}

// NewCronService returns nil when schedule is empty; a nil *CronService is a valid no-op.
func NewCronService(sweeper *SweeperService, locker lock.DistributedLock, schedule string, timeout time.Duration) *CronService {
	if schedule == "" {
		return nil
	}
	if locker == nil {
		locker = lock.NopLock{}
	}
	return &CronService{
		cron:     cron.New(),
		sweeper:  sweeper,
		locker:   locker,
		schedule: schedule,
		timeout:  timeout,
	}
}

func (s *CronService) Start() error {
	if s == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.RunSweep); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("Cron Service started", zap.String("schedule", s.schedule))
	return nil
}

func (s *CronService) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
	logger.Info("Cron Service stopped")
}

// RunSweep executes one sweep unless another instance holds the sweep lock.
func (s *CronService) RunSweep() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	locked, err := s.locker.Acquire(ctx, sweepLockKey, s.lockTTL())
	switch {
	case err != nil:
		// the DAO contract refuses to execute a proposal twice
		logger.Warn("RunSweep: sweep lock unavailable, sweeping without it", zap.Error(err))
	case !locked:
		logger.Debug("RunSweep: lock held, another instance is sweeping")
		return
	default:
		defer func() { _ = s.locker.Release(context.WithoutCancel(ctx), sweepLockKey) }()
	}

	result, err := s.sweeper.Sweep(ctx)
	if err != nil {
		logger.Error("scheduled sweep failed", zap.String("error", errno.ToMessage(err)))
		return
	}
	if len(result.Executed) > 0 || len(result.Errors) > 0 {
		logger.Info("scheduled sweep",
			zap.Uint64s("executed", result.Executed),
			zap.Int("errors", len(result.Errors)))
	}
}

func (s *CronService) lockTTL() time.Duration {
	if s.timeout > 0 {
		return s.timeout
	}
	return executeLockTTL
}
