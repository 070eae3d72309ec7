package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/event"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/monitor"
)

// SweeperService executes every proposal the ledger reports as ready.
type SweeperService struct {
	session *ledger.Session
	deps    Deps
}

// SweepError records one proposal that could not be processed.
type SweepError struct {
	ID    uint64 `json:"id"`
	Error string `json:"error"`
}

// SweepResult lists executed ids in processing (ascending) order.
type SweepResult struct {
	Executed  []uint64
	Errors    []SweepError
	Timestamp time.Time
}

func NewSweeperService(session *ledger.Session, deps Deps) *SweeperService {
	return &SweeperService{session: session, deps: deps.withDefaults()}
}

// Sweep walks ids 1..proposalCount. A failure on one id is recorded and the walk continues.
func (s *SweeperService) Sweep(ctx context.Context) (*SweepResult, error) {
	if !s.session.CanExecute() {
		return nil, errno.ErrDaemonNotConfigured
	}
	timer := prometheus.NewTimer(monitor.Business.SweepDuration)
	defer timer.ObserveDuration()

	count, err := s.session.DAO.ProposalCount(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrSweepFailed, err)
	}

	result := &SweepResult{Executed: []uint64{}, Errors: []SweepError{}}
	for id := uint64(1); id <= count; id++ {
		executed, err := s.sweepOne(ctx, id)
		if err != nil {
			msg := errno.ToMessage(err)
			logger.Error("sweep: proposal failed", zap.Uint64("proposal_id", id), zap.String("error", msg))
			monitor.Business.SweepErrorsTotal.Inc()
			result.Errors = append(result.Errors, SweepError{ID: id, Error: msg})
			continue
		}
		if executed {
			result.Executed = append(result.Executed, id)
		}
	}
	result.Timestamp = time.Now().UTC()

	logger.Info("sweep finished",
		zap.Uint64("proposals", count),
		zap.Int("executed", len(result.Executed)),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

func (s *SweeperService) sweepOne(ctx context.Context, id uint64) (executed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sweeping proposal %d: %s", id, errno.ToMessage(r))
		}
	}()

	if s.session.TimeMachine != nil {
		s.advancePastDelay(ctx, id)
	}

	ready, err := s.session.DAO.CanExecuteProposal(ctx, id)
	if err != nil || !ready {
		return false, err
	}

	logger.Info("sweep: executing proposal", zap.Uint64("proposal_id", id))
	receipt, acquired, err := executeGuarded(ctx, s.deps.Lock, s.session.DAO, id)
	if err != nil {
		return false, err
	}
	if !acquired {
		logger.Debug("sweep: proposal locked by another executor", zap.Uint64("proposal_id", id))
		return false, nil
	}

	monitor.Business.ProposalsExecuted.WithLabelValues("sweep").Inc()
	logger.Info("sweep: proposal executed", zap.Uint64("proposal_id", id), zap.String("tx_hash", receipt.TxHash.Hex()))
	publish(ctx, s.deps.Producer, event.TopicProposalExecuted, fmt.Sprint(id), event.ProposalExecuted{
		ProposalID:  id,
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
		Source:      "sweep",
	})
	return true, nil
}

// advancePastDelay moves a development chain's clock to deadline+delay when it is not there yet.
// Any failure is logged and the proposal is then checked as usual.
func (s *SweeperService) advancePastDelay(ctx context.Context, id uint64) {
	dao := s.session.DAO

	p, err := dao.GetProposal(ctx, id)
	if err != nil {
		logger.Warn("time advance: read proposal", zap.Uint64("proposal_id", id), zap.Error(err))
		return
	}
	if p.Executed {
		return
	}
	delay, err := executionDelay(ctx, s.deps.Cache, dao)
	if err != nil {
		logger.Warn("time advance: read execution delay", zap.Error(err))
		return
	}
	now, err := s.session.Clock.Now(ctx)
	if err != nil {
		logger.Warn("time advance: read ledger time", zap.Error(err))
		return
	}

	target := p.ExecutableAt(delay)
	if now >= target {
		return
	}
	if err := s.session.TimeMachine.AdvanceTime(ctx, target-now); err != nil {
		logger.Warn("time advance failed", zap.Uint64("proposal_id", id), zap.Uint64("seconds", target-now), zap.Error(err))
		return
	}
	logger.Info("time advanced", zap.Uint64("proposal_id", id), zap.Uint64("seconds", target-now))
}
