package governance

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

// Status derives the display label. It reads the same sub-conditions Evaluate produces,
// so display and execution never disagree about deadline or majority.
func Status(p *model.Proposal, now uint64) model.ProposalStatus {
	r := Evaluate(p, now, 0, nil)
	switch {
	case !r.NotExecuted:
		return model.StatusExecuted
	case !r.PastDeadline:
		return model.StatusActive
	case r.HasMajority:
		return model.StatusApproved
	default:
		return model.StatusRejected
	}
}

// VoteWeights holds each option's share of the total, in percent with two decimals.
type VoteWeights struct {
	For     decimal.Decimal
	Against decimal.Decimal
	Abstain decimal.Decimal
}

// Weights returns ok=false when nobody has voted, instead of dividing by zero.
func Weights(p *model.Proposal) (VoteWeights, bool) {
	f, a, ab := orZero(p.VotesFor), orZero(p.VotesAgainst), orZero(p.VotesAbstain)
	total := new(big.Int).Add(f, a)
	total.Add(total, ab)
	if total.Sign() == 0 {
		return VoteWeights{}, false
	}

	d := decimal.NewFromBigInt(total, 0)
	pct := func(n *big.Int) decimal.Decimal {
		return decimal.NewFromBigInt(n, 0).Mul(decimal.NewFromInt(100)).DivRound(d, 2)
	}
	return VoteWeights{For: pct(f), Against: pct(a), Abstain: pct(ab)}, true
}

// FormatEther renders a wei amount as ETH without losing precision.
func FormatEther(wei *big.Int) string {
	return decimal.NewFromBigInt(orZero(wei), -18).String()
}
