package server

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/richardcmg7/dao-voting-platform/internal/governance"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

type fixedClock uint64

func (c fixedClock) Now(context.Context) (uint64, error) { return uint64(c), nil }

// memDAO answers canExecuteProposal with the shared readiness predicate and records executions.
type memDAO struct {
	mu        sync.Mutex
	now       uint64
	delay     uint64
	treasury  *big.Int
	proposals []*model.Proposal
	failOn    map[uint64]error
}

func newMemDAO(now, delay uint64, treasury *big.Int) *memDAO {
	return &memDAO{now: now, delay: delay, treasury: treasury, failOn: map[uint64]error{}}
}

// addReady appends a proposal that has passed its deadline and delay with a FOR majority.
func (d *memDAO) addReady(amount int64) uint64 {
	return d.add(model.Proposal{
		Recipient:    common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
		Amount:       big.NewInt(amount),
		Deadline:     d.now - d.delay - 1,
		Description:  "grant",
		VotesFor:     big.NewInt(3),
		VotesAgainst: big.NewInt(1),
		VotesAbstain: new(big.Int),
	})
}

func (d *memDAO) add(p model.Proposal) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p.ID = uint64(len(d.proposals) + 1)
	d.proposals = append(d.proposals, &p)
	return p.ID
}

func (d *memDAO) lookup(id uint64) (*model.Proposal, error) {
	if id == 0 || id > uint64(len(d.proposals)) {
		return nil, fmt.Errorf("proposal %d does not exist", id)
	}
	return d.proposals[id-1], nil
}

func (d *memDAO) session() *ledger.Session {
	return &ledger.Session{
		Relayer: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Signing: true,
		Clock:   fixedClock(d.now),
		DAO:     d,
	}
}

func (d *memDAO) Address() common.Address {
	return common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
}

func (d *memDAO) ProposalCount(context.Context) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint64(len(d.proposals)), nil
}

func (d *memDAO) GetProposal(_ context.Context, id uint64) (*model.Proposal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (d *memDAO) CanExecuteProposal(_ context.Context, id uint64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookup(id)
	if err != nil {
		return false, err
	}
	return governance.Evaluate(p, d.now, d.delay, d.treasury).Executable(), nil
}

func (d *memDAO) ExecutionDelay(context.Context) (uint64, error) { return d.delay, nil }

func (d *memDAO) GetUserVote(context.Context, uint64, common.Address) (model.UserVote, error) {
	return model.UserVote{}, nil
}

func (d *memDAO) TreasuryBalance(context.Context) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return new(big.Int).Set(d.treasury), nil
}

func (d *memDAO) TotalBalance(ctx context.Context) (*big.Int, error) { return d.TreasuryBalance(ctx) }

func (d *memDAO) UserBalance(context.Context, common.Address) (*big.Int, error) {
	return new(big.Int), nil
}

func (d *memDAO) CanCreateProposal(context.Context, common.Address) (bool, error) { return false, nil }

func (d *memDAO) ExecuteProposal(_ context.Context, id uint64) (*ledger.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failOn[id]; err != nil {
		return nil, err
	}
	p, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	if !governance.Evaluate(p, d.now, d.delay, d.treasury).Executable() {
		return nil, errors.New("execution reverted: proposal cannot be executed")
	}
	p.Executed = true
	d.treasury = new(big.Int).Sub(d.treasury, p.Amount)
	return &ledger.Receipt{TxHash: common.BigToHash(new(big.Int).SetUint64(0xe000 + id)), BlockNumber: 100 + id}, nil
}
