package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
)

// Receipt identifies a confirmed state-changing call.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// Clock reads ledger time (the latest block timestamp).
type Clock interface {
	Now(ctx context.Context) (uint64, error)
}

// TimeMachine moves a development chain's clock forward. Never configured against real networks.
type TimeMachine interface {
	AdvanceTime(ctx context.Context, seconds uint64) error
}

// DAO is the treasury/proposal/voting contract as this service consumes it.
type DAO interface {
	Address() common.Address
	ProposalCount(ctx context.Context) (uint64, error)
	GetProposal(ctx context.Context, id uint64) (*model.Proposal, error)
	CanExecuteProposal(ctx context.Context, id uint64) (bool, error)
	ExecutionDelay(ctx context.Context) (uint64, error)
	GetUserVote(ctx context.Context, id uint64, voter common.Address) (model.UserVote, error)
	TreasuryBalance(ctx context.Context) (*big.Int, error)
	TotalBalance(ctx context.Context) (*big.Int, error)
	UserBalance(ctx context.Context, user common.Address) (*big.Int, error)
	CanCreateProposal(ctx context.Context, user common.Address) (bool, error)

	// ExecuteProposal submits executeProposal(id) and waits for it to be mined.
	ExecuteProposal(ctx context.Context, id uint64) (*Receipt, error)
}

// Forwarder is the MinimalForwarder contract.
type Forwarder interface {
	Address() common.Address
	GetNonce(ctx context.Context, from common.Address) (*big.Int, error)
	// Execute relays a signed request and waits for it to be mined.
	Execute(ctx context.Context, req metatx.ForwardRequest, signature []byte) (*Receipt, error)
}
