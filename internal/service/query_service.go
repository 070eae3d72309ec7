package service

import (
	"context"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/richardcmg7/dao-voting-platform/internal/governance"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/internal/model"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
)

// QueryService reads proposal and treasury state for display.
type QueryService struct {
	session *ledger.Session
	deps    Deps
}

type ProposalView struct {
	ID           uint64               `json:"id"`
	Recipient    string               `json:"recipient"`
	Amount       string               `json:"amount"`
	AmountEth    string               `json:"amountEth"`
	Deadline     uint64               `json:"deadline"`
	ExecutableAt uint64               `json:"executableAt"`
	Description  string               `json:"description"`
	VotesFor     string               `json:"votesFor"`
	VotesAgainst string               `json:"votesAgainst"`
	VotesAbstain string               `json:"votesAbstain"`
	Executed     bool                 `json:"executed"`
	CreatedAt    uint64               `json:"createdAt"`
	Status       model.ProposalStatus `json:"status"`
	Executable   bool                 `json:"executable"`
	Weights      *WeightsView         `json:"weights,omitempty"`
	UserVote     *string              `json:"userVote,omitempty"`
}

type WeightsView struct {
	For     string `json:"for"`
	Against string `json:"against"`
	Abstain string `json:"abstain"`
}

type TreasuryView struct {
	TreasuryBalance    string  `json:"treasuryBalance"`
	TreasuryBalanceEth string  `json:"treasuryBalanceEth"`
	TotalBalance       string  `json:"totalBalance"`
	Account            *string `json:"account,omitempty"`
	UserBalance        *string `json:"userBalance,omitempty"`
	CanCreateProposal  *bool   `json:"canCreateProposal,omitempty"`
}

func NewQueryService(session *ledger.Session, deps Deps) *QueryService {
	return &QueryService{session: session, deps: deps.withDefaults()}
}

// ListProposals returns every proposal, newest first. viewer may be nil; when set, each view
// carries that account's vote.
func (s *QueryService) ListProposals(ctx context.Context, viewer *common.Address) ([]ProposalView, error) {
	if !s.session.CanRead() {
		return nil, errno.ErrDAONotConfigured
	}
	dao := s.session.DAO

	count, err := dao.ProposalCount(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	now, err := s.session.Clock.Now(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	delay, err := executionDelay(ctx, s.deps.Cache, dao)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	treasury, err := dao.TreasuryBalance(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}

	views := make([]ProposalView, 0, count)
	for id := uint64(1); id <= count; id++ {
		p, err := dao.GetProposal(ctx, id)
		if err != nil {
			return nil, errno.Wrap(errno.ErrLedger, err)
		}
		view := newProposalView(p, now, delay, treasury)

		if viewer != nil {
			vote, err := dao.GetUserVote(ctx, id, *viewer)
			if err != nil {
				return nil, errno.Wrap(errno.ErrLedger, err)
			}
			if vote.Voted {
				label := vote.VoteType.String()
				view.UserVote = &label
			}
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].ID > views[j].ID })
	return views, nil
}

func newProposalView(p *model.Proposal, now, delay uint64, treasury *big.Int) ProposalView {
	view := ProposalView{
		ID:           p.ID,
		Recipient:    p.Recipient.Hex(),
		Amount:       bigOrZero(p.Amount),
		AmountEth:    governance.FormatEther(p.Amount),
		Deadline:     p.Deadline,
		ExecutableAt: p.ExecutableAt(delay),
		Description:  p.Description,
		VotesFor:     bigOrZero(p.VotesFor),
		VotesAgainst: bigOrZero(p.VotesAgainst),
		VotesAbstain: bigOrZero(p.VotesAbstain),
		Executed:     p.Executed,
		CreatedAt:    p.CreatedAt,
		Status:       governance.Status(p, now),
		Executable:   governance.Evaluate(p, now, delay, treasury).Executable(),
	}
	if w, ok := governance.Weights(p); ok {
		view.Weights = &WeightsView{
			For:     w.For.StringFixed(2),
			Against: w.Against.StringFixed(2),
			Abstain: w.Abstain.StringFixed(2),
		}
	}
	return view
}

// Treasury reports the treasury balance and, when account is set, that member's standing.
func (s *QueryService) Treasury(ctx context.Context, account *common.Address) (*TreasuryView, error) {
	if !s.session.CanRead() {
		return nil, errno.ErrDAONotConfigured
	}
	dao := s.session.DAO

	treasury, err := dao.TreasuryBalance(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	total, err := dao.TotalBalance(ctx)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	view := &TreasuryView{
		TreasuryBalance:    bigOrZero(treasury),
		TreasuryBalanceEth: governance.FormatEther(treasury),
		TotalBalance:       bigOrZero(total),
	}
	if account == nil {
		return view, nil
	}

	balance, err := dao.UserBalance(ctx, *account)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	canCreate, err := dao.CanCreateProposal(ctx, *account)
	if err != nil {
		return nil, errno.Wrap(errno.ErrLedger, err)
	}
	addr := account.Hex()
	bal := bigOrZero(balance)
	view.Account = &addr
	view.UserBalance = &bal
	view.CanCreateProposal = &canCreate
	return view, nil
}
