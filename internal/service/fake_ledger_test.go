package service

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
	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
)

var (
	testDAOAddr       = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testForwarderAddr = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	testRelayer       = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	alice             = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type fakeClock struct {
	mu  sync.Mutex
	now uint64
}

func (c *fakeClock) Now(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now, nil
}

func (c *fakeClock) set(t uint64) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fakeTimeMachine struct {
	clock    *fakeClock
	advanced []uint64
	err      error
}

func (m *fakeTimeMachine) AdvanceTime(_ context.Context, seconds uint64) error {
	if m.err != nil {
		return m.err
	}
	m.advanced = append(m.advanced, seconds)
	m.clock.mu.Lock()
	m.clock.now += seconds
	m.clock.mu.Unlock()
	return nil
}

// fakeDAO keeps proposals in memory and reuses the shared readiness predicate for canExecuteProposal.
type fakeDAO struct {
	mu        sync.Mutex
	clock     *fakeClock
	delay     uint64
	treasury  *big.Int
	proposals []*model.Proposal
	votes     map[uint64]map[common.Address]model.VoteType
	balances  map[common.Address]*big.Int
	failOn    map[uint64]error
	executes  int
	delayHits int
}

func newFakeDAO(clock *fakeClock, delay uint64, treasury *big.Int) *fakeDAO {
	return &fakeDAO{
		clock:    clock,
		delay:    delay,
		treasury: treasury,
		votes:    map[uint64]map[common.Address]model.VoteType{},
		balances: map[common.Address]*big.Int{},
		failOn:   map[uint64]error{},
	}
}

func (d *fakeDAO) add(p model.Proposal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p.ID = uint64(len(d.proposals) + 1)
	for _, v := range []**big.Int{&p.VotesFor, &p.VotesAgainst, &p.VotesAbstain} {
		if *v == nil {
			*v = new(big.Int)
		}
	}
	d.proposals = append(d.proposals, &p)
}

func (d *fakeDAO) lookup(id uint64) (*model.Proposal, error) {
	if id == 0 || id > uint64(len(d.proposals)) {
		return nil, fmt.Errorf("proposal %d does not exist", id)
	}
	return d.proposals[id-1], nil
}

func (d *fakeDAO) Address() common.Address { return testDAOAddr }

func (d *fakeDAO) ProposalCount(context.Context) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint64(len(d.proposals)), nil
}

func (d *fakeDAO) GetProposal(_ context.Context, id uint64) (*model.Proposal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (d *fakeDAO) CanExecuteProposal(ctx context.Context, id uint64) (bool, error) {
	now, _ := d.clock.Now(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookup(id)
	if err != nil {
		return false, err
	}
	return governance.Evaluate(p, now, d.delay, d.treasury).Executable(), nil
}

func (d *fakeDAO) ExecutionDelay(context.Context) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delayHits++
	return d.delay, nil
}

func (d *fakeDAO) GetUserVote(_ context.Context, id uint64, voter common.Address) (model.UserVote, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.votes[id][voter]
	return model.UserVote{Voted: ok, VoteType: v}, nil
}

func (d *fakeDAO) TreasuryBalance(context.Context) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return new(big.Int).Set(d.treasury), nil
}

func (d *fakeDAO) TotalBalance(ctx context.Context) (*big.Int, error) {
	return d.TreasuryBalance(ctx)
}

func (d *fakeDAO) UserBalance(_ context.Context, user common.Address) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.balances[user]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (d *fakeDAO) CanCreateProposal(ctx context.Context, user common.Address) (bool, error) {
	b, _ := d.UserBalance(ctx, user)
	total, _ := d.TotalBalance(ctx)
	// 10% of the treasury
	return total.Sign() > 0 && new(big.Int).Mul(b, big.NewInt(10)).Cmp(total) >= 0, nil
}

func (d *fakeDAO) ExecuteProposal(ctx context.Context, id uint64) (*ledger.Receipt, error) {
	now, _ := d.clock.Now(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failOn[id]; err != nil {
		return nil, err
	}
	p, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	if !governance.Evaluate(p, now, d.delay, d.treasury).Executable() {
		return nil, errors.New("execution reverted: proposal cannot be executed")
	}
	p.Executed = true
	d.treasury = new(big.Int).Sub(d.treasury, p.Amount)
	d.executes++
	return &ledger.Receipt{TxHash: common.BigToHash(big.NewInt(int64(d.executes))), BlockNumber: uint64(100 + d.executes)}, nil
}

// fakeForwarder accepts a request only at the sender's current nonce, then increments it.
type fakeForwarder struct {
	mu     sync.Mutex
	nonces map[common.Address]uint64
	calls  int
}

func newFakeForwarder() *fakeForwarder {
	return &fakeForwarder{nonces: map[common.Address]uint64{}}
}

func (f *fakeForwarder) Address() common.Address { return testForwarderAddr }

func (f *fakeForwarder) GetNonce(_ context.Context, from common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).SetUint64(f.nonces[from]), nil
}

func (f *fakeForwarder) Execute(_ context.Context, req metatx.ForwardRequest, _ []byte) (*ledger.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Nonce.Uint64() != f.nonces[req.From] {
		return nil, errors.New("MinimalForwarder: signature does not match request")
	}
	f.nonces[req.From]++
	f.calls++
	return &ledger.Receipt{TxHash: common.BigToHash(big.NewInt(int64(1000 + f.calls))), BlockNumber: uint64(f.calls)}, nil
}

func newTestSession(dao *fakeDAO, fwd *fakeForwarder) *ledger.Session {
	s := &ledger.Session{
		Relayer: testRelayer,
		Signing: true,
		ChainID: func(context.Context) (*big.Int, error) { return big.NewInt(31337), nil },
	}
	if dao != nil {
		s.DAO = dao
		s.Clock = dao.clock
	}
	if fwd != nil {
		s.Forwarder = fwd
	}
	return s
}
