package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/event"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
	"github.com/richardcmg7/dao-voting-platform/pkg/monitor"
)

// RelayService forwards signed meta-transactions to the forwarder, paying their gas.
type RelayService struct {
	session *ledger.Session
	deps    Deps
}

// RelayResult identifies the confirmed forwarder transaction.
type RelayResult struct {
	TxHash      common.Hash
	BlockNumber uint64
}

func NewRelayService(session *ledger.Session, deps Deps) *RelayService {
	return &RelayService{session: session, deps: deps.withDefaults()}
}

// Submit re-reads the forwarder nonce for req.From and rejects a stale or future nonce before
// spending gas. The forwarder's own verification stays authoritative; this only turns the common
// replay case into a clear client error.
func (s *RelayService) Submit(ctx context.Context, req metatx.ForwardRequest, signature []byte) (*RelayResult, error) {
	if !s.session.CanRelay() {
		monitor.Business.RelaySubmissionsTotal.WithLabelValues("unconfigured").Inc()
		return nil, errno.ErrRelayerNotConfigured
	}
	if req.Nonce == nil {
		return nil, errno.ErrInvalidPayload.WithMessage("Invalid request payload: nonce is required")
	}

	current, err := s.session.Forwarder.GetNonce(ctx, req.From)
	if err != nil {
		monitor.Business.RelaySubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, errno.Wrap(errno.ErrRelayFailed, err)
	}
	if current.Cmp(req.Nonce) != 0 {
		monitor.Business.RelaySubmissionsTotal.WithLabelValues("nonce_mismatch").Inc()
		logger.Info("relay rejected: nonce mismatch",
			zap.String("from", req.From.Hex()),
			zap.String("expected", current.String()),
			zap.String("got", req.Nonce.String()))
		return nil, errno.ErrNonceMismatch.
			WithMessage(fmt.Sprintf("Nonce mismatch: expected %s got %s", current, req.Nonce)).
			WithFields(map[string]string{"expected": current.String(), "got": req.Nonce.String()})
	}

	receipt, err := s.session.Forwarder.Execute(ctx, req, signature)
	if err != nil {
		monitor.Business.RelaySubmissionsTotal.WithLabelValues("failed").Inc()
		logger.Error("relay failed",
			zap.String("from", req.From.Hex()),
			zap.String("nonce", req.Nonce.String()),
			zap.Error(err))
		return nil, errno.Wrap(errno.ErrRelayFailed, err)
	}

	monitor.Business.RelaySubmissionsTotal.WithLabelValues("success").Inc()
	logger.Info("meta-transaction relayed",
		zap.String("from", req.From.Hex()),
		zap.String("nonce", req.Nonce.String()),
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber))

	publish(ctx, s.deps.Producer, event.TopicVoteRelayed, req.From.Hex(), event.VoteRelayed{
		From:        req.From.Hex(),
		Nonce:       req.Nonce.String(),
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
	})

	return &RelayResult{TxHash: receipt.TxHash, BlockNumber: receipt.BlockNumber}, nil
}
