package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/event"
	"github.com/richardcmg7/dao-voting-platform/internal/governance"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/monitor"
)

// ExecutorService evaluates one proposal's readiness and, unless asked for diagnostics only,
// executes it when the ledger agrees it is ready.
type ExecutorService struct {
	session *ledger.Session
	deps    Deps
}

// ExecutionReport is a point-in-time snapshot; it is returned to the caller and never stored.
type ExecutionReport struct {
	ProposalID       uint64
	Executed         bool
	TxHash           *common.Hash
	CanExecuteBefore bool
	ServerTimestamp  uint64
	ExecutionDelay   uint64
	Deadline         uint64
	Readiness        governance.Readiness
	Diagnostics      []string
}

// Conditions is the per-condition breakdown behind the aggregate.
func (r *ExecutionReport) Conditions() []governance.Condition {
	return r.Readiness.Conditions()
}

func NewExecutorService(session *ledger.Session, deps Deps) *ExecutorService {
	return &ExecutorService{session: session, deps: deps.withDefaults()}
}

// Execute never submits anything when debugOnly is set.
func (s *ExecutorService) Execute(ctx context.Context, proposalID uint64, debugOnly bool) (*ExecutionReport, error) {
	if !s.session.CanExecute() {
		return nil, errno.ErrRelayerNotConfigured
	}
	mode := "execute"
	if debugOnly {
		mode = "debug"
	}
	monitor.Business.ExecutionChecksTotal.WithLabelValues(mode).Inc()

	dao := s.session.DAO

	now, err := s.session.Clock.Now(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}
	proposal, err := dao.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}
	delay, err := executionDelay(ctx, s.deps.Cache, dao)
	if err != nil {
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}
	canExecute, err := dao.CanExecuteProposal(ctx, proposalID)
	if err != nil {
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}
	treasury, err := dao.TreasuryBalance(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}

	readiness := governance.Evaluate(proposal, now, delay, treasury)
	report := &ExecutionReport{
		ProposalID:       proposalID,
		Executed:         proposal.Executed,
		CanExecuteBefore: canExecute,
		ServerTimestamp:  now,
		ExecutionDelay:   delay,
		Deadline:         proposal.Deadline,
		Readiness:        readiness,
		Diagnostics:      snapshotLines(now, proposal.Deadline, proposal.ExecutableAt(delay), treasury, proposal.VotesFor, proposal.VotesAgainst),
	}
	for _, c := range readiness.Conditions() {
		report.Diagnostics = append(report.Diagnostics, c.Status())
	}
	if canExecute != readiness.Executable() {
		report.Diagnostics = append(report.Diagnostics,
			fmt.Sprintf("NOTE: ledger readiness (%t) differs from local evaluation (%s)", canExecute, readiness))
	}

	if debugOnly {
		return report, nil
	}
	if !canExecute || !readiness.NotExecuted {
		report.Diagnostics = append(report.Diagnostics, "Execution skipped: conditions not met")
		return report, nil
	}

	receipt, acquired, err := executeGuarded(ctx, s.deps.Lock, dao, proposalID)
	if err != nil {
		logger.Error("execute proposal failed", zap.Uint64("proposal_id", proposalID), zap.Error(err))
		return nil, errno.Wrap(errno.ErrExecuteFailed, err)
	}
	if !acquired {
		report.Diagnostics = append(report.Diagnostics, "Execution skipped: another executor is submitting this proposal")
		return report, nil
	}

	report.Executed = true
	report.TxHash = &receipt.TxHash
	report.Diagnostics = append(report.Diagnostics, "Execution transaction submitted")

	monitor.Business.ProposalsExecuted.WithLabelValues("execute").Inc()
	logger.Info("proposal executed",
		zap.Uint64("proposal_id", proposalID),
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber))
	publish(ctx, s.deps.Producer, event.TopicProposalExecuted, fmt.Sprint(proposalID), event.ProposalExecuted{
		ProposalID:  proposalID,
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
		Source:      "execute",
	})
	return report, nil
}

func snapshotLines(now, deadline, executableAt uint64, treasury, votesFor, votesAgainst *big.Int) []string {
	return []string{
		fmt.Sprintf("Node time: %d", now),
		fmt.Sprintf("Deadline: %d", deadline),
		fmt.Sprintf("Deadline plus delay: %d", executableAt),
		fmt.Sprintf("DAO balance: %s ETH", governance.FormatEther(treasury)),
		fmt.Sprintf("Votes FOR: %s", bigOrZero(votesFor)),
		fmt.Sprintf("Votes AGAINST: %s", bigOrZero(votesAgainst)),
	}
}

func bigOrZero(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}
