package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

// proposalTuple matches the getProposal return tuple; abi.ConvertType maps by field name.
type proposalTuple struct {
	Id           *big.Int
	Recipient    common.Address
	Amount       *big.Int
	Deadline     *big.Int
	Description  string
	VotesFor     *big.Int
	VotesAgainst *big.Int
	VotesAbstain *big.Int
	Executed     bool
	CreatedAt    *big.Int
}

// DAOContract is the go-ethereum binding of the DAO contract.
type DAOContract struct {
	address  common.Address
	contract *bind.BoundContract
	client   *Client
	tx       *Transactor // nil for read-only use
}

var _ DAO = (*DAOContract)(nil)

func NewDAOContract(address common.Address, client *Client, tx *Transactor) *DAOContract {
	return &DAOContract{
		address:  address,
		contract: bind.NewBoundContract(address, DAOABI, client.eth, client.eth, client.eth),
		client:   client,
		tx:       tx,
	}
}

// PackVote encodes vote(proposalId, voteType), the payload of every gasless vote.
func PackVote(proposalID uint64, voteType model.VoteType) ([]byte, error) {
	return DAOABI.Pack("vote", new(big.Int).SetUint64(proposalID), uint8(voteType))
}

func (d *DAOContract) Address() common.Address { return d.address }

func (d *DAOContract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no data", method)
	}
	return out, nil
}

func (d *DAOContract) callUint(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	out, err := d.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: expected uint256, got %T", method, out[0])
	}
	return n, nil
}

func (d *DAOContract) callBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	out, err := d.call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	b, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected bool, got %T", method, out[0])
	}
	return b, nil
}

func (d *DAOContract) ProposalCount(ctx context.Context) (uint64, error) {
	n, err := d.callUint(ctx, "proposalCount")
	if err != nil {
		return 0, err
	}
	return toUint64("proposalCount", n)
}

func (d *DAOContract) GetProposal(ctx context.Context, id uint64) (*model.Proposal, error) {
	out, err := d.call(ctx, "getProposal", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	t, ok := abi.ConvertType(out[0], new(proposalTuple)).(*proposalTuple)
	if !ok || t.Id == nil {
		return nil, errors.New("getProposal: unexpected return shape")
	}
	return t.proposal()
}

// proposal rejects ids and timestamps that do not fit in uint64 instead of truncating them.
func (t *proposalTuple) proposal() (*model.Proposal, error) {
	id, err := toUint64("proposal id", t.Id)
	if err != nil {
		return nil, err
	}
	deadline, err := toUint64("proposal deadline", t.Deadline)
	if err != nil {
		return nil, err
	}
	createdAt, err := toUint64("proposal createdAt", t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &model.Proposal{
		ID:           id,
		Recipient:    t.Recipient,
		Amount:       t.Amount,
		Deadline:     deadline,
		Description:  t.Description,
		VotesFor:     t.VotesFor,
		VotesAgainst: t.VotesAgainst,
		VotesAbstain: t.VotesAbstain,
		Executed:     t.Executed,
		CreatedAt:    createdAt,
	}, nil
}

func toUint64(name string, v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("%s: missing value", name)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%s: %s does not fit in uint64", name, v)
	}
	return v.Uint64(), nil
}

func (d *DAOContract) CanExecuteProposal(ctx context.Context, id uint64) (bool, error) {
	return d.callBool(ctx, "canExecuteProposal", new(big.Int).SetUint64(id))
}

func (d *DAOContract) ExecutionDelay(ctx context.Context) (uint64, error) {
	n, err := d.callUint(ctx, "EXECUTION_DELAY")
	if err != nil {
		return 0, err
	}
	return toUint64("EXECUTION_DELAY", n)
}

func (d *DAOContract) GetUserVote(ctx context.Context, id uint64, voter common.Address) (model.UserVote, error) {
	out, err := d.call(ctx, "getUserVote", new(big.Int).SetUint64(id), voter)
	if err != nil {
		return model.UserVote{}, err
	}
	if len(out) < 2 {
		return model.UserVote{}, errors.New("getUserVote: unexpected return shape")
	}
	voted, _ := out[0].(bool)
	vt, _ := out[1].(uint8)
	return model.UserVote{Voted: voted, VoteType: model.VoteType(vt)}, nil
}

// TreasuryBalance is the contract's native balance, which is what executeProposal pays from.
func (d *DAOContract) TreasuryBalance(ctx context.Context) (*big.Int, error) {
	bal, err := d.client.BalanceAt(ctx, d.address)
	if err != nil {
		return nil, fmt.Errorf("get treasury balance: %w", err)
	}
	return bal, nil
}

func (d *DAOContract) TotalBalance(ctx context.Context) (*big.Int, error) {
	return d.callUint(ctx, "totalBalance")
}

func (d *DAOContract) UserBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	return d.callUint(ctx, "getUserBalance", user)
}

func (d *DAOContract) CanCreateProposal(ctx context.Context, user common.Address) (bool, error) {
	return d.callBool(ctx, "canCreateProposal", user)
}

func (d *DAOContract) ExecuteProposal(ctx context.Context, id uint64) (*Receipt, error) {
	return d.tx.send(ctx, nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return d.contract.Transact(opts, "executeProposal", new(big.Int).SetUint64(id))
	})
}

// CreateProposal opens a vote that closes duration seconds after it is mined.
func (d *DAOContract) CreateProposal(ctx context.Context, recipient common.Address, amount *big.Int, durationSeconds uint64, description string) (*Receipt, error) {
	return d.tx.send(ctx, nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return d.contract.Transact(opts, "createProposal", recipient, amount, new(big.Int).SetUint64(durationSeconds), description)
	})
}

// Fund deposits value wei into the treasury.
func (d *DAOContract) Fund(ctx context.Context, value *big.Int) (*Receipt, error) {
	return d.tx.send(ctx, value, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return d.contract.Transact(opts, "fundDAO")
	})
}
