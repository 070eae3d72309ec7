package model

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Proposal mirrors the DAO contract's proposal struct. The ledger owns it; this service only reads it.
type Proposal struct {
	ID           uint64
	Recipient    common.Address
	Amount       *big.Int // wei
	Deadline     uint64   // unix seconds
	Description  string
	VotesFor     *big.Int
	VotesAgainst *big.Int
	VotesAbstain *big.Int
	Executed     bool
	CreatedAt    uint64
}

// ExecutableAt is the earliest ledger time at which execution is allowed. It saturates at
// math.MaxUint64 rather than wrapping to a time in the past.
func (p *Proposal) ExecutableAt(executionDelay uint64) uint64 {
	if p.Deadline > math.MaxUint64-executionDelay {
		return math.MaxUint64
	}
	return p.Deadline + executionDelay
}

// VoteType is the uint8 the DAO's vote function takes.
type VoteType uint8

const (
	VoteFor VoteType = iota
	VoteAgainst
	VoteAbstain
)

func (v VoteType) String() string {
	switch v {
	case VoteFor:
		return "FOR"
	case VoteAgainst:
		return "AGAINST"
	case VoteAbstain:
		return "ABSTAIN"
	default:
		return fmt.Sprintf("VoteType(%d)", uint8(v))
	}
}

// ParseVoteType accepts for/against/abstain in any case.
func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "for", "0":
		return VoteFor, nil
	case "against", "1":
		return VoteAgainst, nil
	case "abstain", "2":
		return VoteAbstain, nil
	}
	return 0, fmt.Errorf("unknown vote type %q (want for, against or abstain)", s)
}

// UserVote is the result of getUserVote(id, address).
type UserVote struct {
	Voted    bool
	VoteType VoteType
}

// ProposalStatus is the label shown next to a proposal.
type ProposalStatus string

const (
	StatusActive   ProposalStatus = "Active"
	StatusApproved ProposalStatus = "Approved"
	StatusRejected ProposalStatus = "Rejected"
	StatusExecuted ProposalStatus = "Executed"
)
